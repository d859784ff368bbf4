package shell

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pkgin-go/pkgin/internal/utils/logger"
)

// commandMap resolves well-known external package-management binaries to
// their canonical install paths, mirroring how pkgsrc installs them under
// the local prefix rather than a generic system bin directory.
var commandMap = map[string]string{
	"pkg_add":    "/usr/pkg/sbin/pkg_add",
	"pkg_delete": "/usr/pkg/sbin/pkg_delete",
	"pkg_info":   "/usr/pkg/sbin/pkg_info",
	"pkg_admin":  "/usr/pkg/sbin/pkg_admin",
	"gpg":        "/usr/pkg/bin/gpg",
	"gpgv":       "/usr/pkg/bin/gpgv",
}

// Result captures everything observable from a finished subprocess: its two
// output streams kept separate (never dup2'd together) so callers can
// classify stderr independently of stdout.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// GetOSEnvirons returns the system environment variables as a map.
func GetOSEnvirons() map[string]string {
	environ := make(map[string]string)
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) == 2 {
			environ[parts[0]] = parts[1]
		}
	}
	return environ
}

// GetOSProxyEnvirons retrieves HTTP(S) proxy environment variables.
func GetOSProxyEnvirons() map[string]string {
	osEnv := GetOSEnvirons()
	proxyEnv := make(map[string]string)
	for key, value := range osEnv {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "http_proxy") || strings.Contains(lower, "https_proxy") {
			proxyEnv[key] = value
		}
	}
	return proxyEnv
}

// environWithout returns the parent process's environment with key removed,
// so a child inherits everything except the named variable. pkg_add and
// pkg_delete both honor PKG_PATH, and a value left over from an unrelated
// shell would silently redirect them at the wrong archive location.
func environWithout(key string) []string {
	prefix := key + "="
	env := os.Environ()
	out := make([]string, 0, len(env))
	for _, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			continue
		}
		out = append(out, kv)
	}
	return out
}

// resolveBin maps a logical binary name to its full path when known, and
// otherwise leaves it to be resolved via PATH by exec.LookPath.
func resolveBin(name string) string {
	if full, ok := commandMap[name]; ok {
		return full
	}
	return name
}

// IsCommandExist reports whether name can be located, either in commandMap
// or on PATH.
func IsCommandExist(name string) bool {
	bin := resolveBin(name)
	if _, err := os.Stat(bin); err == nil {
		return true
	}
	_, err := exec.LookPath(bin)
	return err == nil
}

// Run executes name with args directly (no shell interposed), capturing
// stdout and stderr into independent buffers. sudo, when true, prefixes the
// invocation with sudo.
func Run(ctx context.Context, name string, args []string, sudo bool, stdin []byte) (*Result, error) {
	log := logger.Logger()
	bin := resolveBin(name)

	var cmd *exec.Cmd
	if sudo {
		cmd = exec.CommandContext(ctx, "sudo", append([]string{bin}, args...)...)
	} else {
		cmd = exec.CommandContext(ctx, bin, args...)
	}

	cmd.Env = environWithout("PKG_PATH")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	log.Debugf("exec: %s %s", bin, strings.Join(args, " "))
	err := cmd.Run()

	res := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		var exitErr *exec.ExitError
		if ok := AsExitError(err, &exitErr); ok {
			return res, fmt.Errorf("%s exited %d: %w", bin, exitErr.ExitCode(), err)
		}
		return res, fmt.Errorf("failed to run %s: %w", bin, err)
	}

	return res, nil
}

// AsExitError is a thin errors.As wrapper kept local to avoid importing
// errors in every call site that just wants the exit code.
func AsExitError(err error, target **exec.ExitError) bool {
	ee, ok := err.(*exec.ExitError)
	if ok {
		*target = ee
	}
	return ok
}
