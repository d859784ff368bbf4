package installer_test

import (
	"testing"

	"github.com/pkgin-go/pkgin/internal/installer"
	"github.com/stretchr/testify/assert"
)

func TestClassifyOutputCountsWarningsAndErrors(t *testing.T) {
	stderr := []byte(
		"Warning: obsolete dependency\n" +
			"pkg_add: foo-1.0: addition failed\n" +
			"pkg_add: bar-1.0 already installed\n" +
			"Can't install baz-1.0\n",
	)
	warnings, errs := installer.ClassifyOutput(stderr)
	assert.Equal(t, 1, warnings)
	assert.Equal(t, 2, errs)
}

func TestClassifyOutputEmpty(t *testing.T) {
	warnings, errs := installer.ClassifyOutput(nil)
	assert.Equal(t, 0, warnings)
	assert.Equal(t, 0, errs)
}

func TestClassifyOutputAlreadyInstalledIsNotAnError(t *testing.T) {
	warnings, errs := installer.ClassifyOutput([]byte("pkg_add: quux-1.0 already installed\n"))
	assert.Equal(t, 0, warnings)
	assert.Equal(t, 0, errs)
}
