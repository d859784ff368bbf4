package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
)

// fetchFTP performs an anonymous passive-mode RETR. pkgsrc mirrors that
// still serve plain ftp:// are rare enough that a hand-rolled client
// against net/textproto is simpler than pulling in a dedicated FTP
// dependency nothing else in this repo would otherwise exercise.
func fetchFTP(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	host := u.Host
	if !strings.Contains(host, ":") {
		host += ":21"
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", host)
	if err != nil {
		return nil, fmt.Errorf("fetch: ftp dial %s: %w", host, err)
	}

	text := textproto.NewConn(conn)
	if _, _, err := text.ReadResponse(220); err != nil {
		conn.Close()
		return nil, fmt.Errorf("fetch: ftp greeting: %w", err)
	}

	user := "anonymous"
	pass := "anonymous@"
	if u.User != nil {
		user = u.User.Username()
		if p, ok := u.User.Password(); ok {
			pass = p
		}
	}
	if err := ftpCommand(text, "USER "+user, 331, 230); err != nil {
		conn.Close()
		return nil, err
	}
	if err := ftpCommand(text, "PASS "+pass, 230); err != nil {
		conn.Close()
		return nil, err
	}
	if err := ftpCommand(text, "TYPE I", 200); err != nil {
		conn.Close()
		return nil, err
	}

	dataConn, err := ftpPassive(text, &dialer, ctx, host)
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := text.PrintfLine("RETR %s", u.Path); err != nil {
		dataConn.Close()
		conn.Close()
		return nil, err
	}
	if _, _, err := text.ReadResponse(150); err != nil {
		dataConn.Close()
		conn.Close()
		return nil, fmt.Errorf("fetch: ftp retr %s: %w", u.Path, err)
	}

	return &ftpBody{data: dataConn, control: text, conn: conn}, nil
}

func ftpCommand(text *textproto.Conn, cmd string, okCodes ...int) error {
	if err := text.PrintfLine("%s", cmd); err != nil {
		return err
	}
	code, msg, err := text.ReadResponse(okCodes[0])
	if err == nil {
		return nil
	}
	for _, ok := range okCodes[1:] {
		if code == ok {
			return nil
		}
	}
	return fmt.Errorf("fetch: ftp %q: %d %s", cmd, code, msg)
}

func ftpPassive(text *textproto.Conn, dialer *net.Dialer, ctx context.Context, controlHost string) (net.Conn, error) {
	if err := text.PrintfLine("PASV"); err != nil {
		return nil, err
	}
	_, msg, err := text.ReadResponse(227)
	if err != nil {
		return nil, fmt.Errorf("fetch: ftp pasv: %w", err)
	}

	start := strings.Index(msg, "(")
	end := strings.Index(msg, ")")
	if start < 0 || end < 0 {
		return nil, fmt.Errorf("fetch: ftp pasv: unparseable response %q", msg)
	}
	parts := strings.Split(msg[start+1:end], ",")
	if len(parts) != 6 {
		return nil, fmt.Errorf("fetch: ftp pasv: unparseable response %q", msg)
	}
	p1, _ := strconv.Atoi(parts[4])
	p2, _ := strconv.Atoi(parts[5])
	ip := strings.Join(parts[:4], ".")
	addr := fmt.Sprintf("%s:%d", ip, p1*256+p2)

	return dialer.DialContext(ctx, "tcp", addr)
}

// ftpBody closes the data connection, then drains and closes the control
// connection so the server sees a clean session teardown.
type ftpBody struct {
	data    net.Conn
	control *textproto.Conn
	conn    net.Conn
}

func (b *ftpBody) Read(p []byte) (int, error) { return b.data.Read(p) }

func (b *ftpBody) Close() error {
	dataErr := b.data.Close()
	b.control.ReadResponse(226)
	b.control.PrintfLine("QUIT")
	b.conn.Close()
	return dataErr
}
