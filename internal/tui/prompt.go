package tui

import (
	"fmt"
	"os"

	"github.com/mfgtrace/tracectl/pkg/domain"
)

// PromptCredentials asks for a username and password on the terminal.
func PromptCredentials() (username, password string, err error) {
	f := &authFields{}
	if err := buildAuthForm(modeLogin, f).Run(); err != nil {
		return "", "", fmt.Errorf("prompt failed: %w", err)
	}
	return f.username, f.password, nil
}

// PromptRegistration asks for the fields of a new account.
func PromptRegistration() (domain.Registration, error) {
	f := &authFields{role: "operator"}
	if err := buildAuthForm(modeRegister, f).Run(); err != nil {
		return domain.Registration{}, fmt.Errorf("prompt failed: %w", err)
	}
	return domain.Registration{
		Username:   f.username,
		Email:      f.email,
		Password:   f.password,
		Role:       f.role,
		Department: f.department,
	}, nil
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
