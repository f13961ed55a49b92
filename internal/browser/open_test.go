package browser

import (
	"path/filepath"
	"testing"
)

func TestPageURL(t *testing.T) {
	tests := []struct {
		web     string
		page    string
		want    string
		wantErr bool
	}{
		{"http://localhost:5000", "products", "http://localhost:5000/products", false},
		{"http://localhost:5000/", "/tracking", "http://localhost:5000/tracking", false},
		{"https://trace.example.com/panel", "devices", "https://trace.example.com/panel/devices", false},
		{"http://localhost:5000", "", "http://localhost:5000/dashboard", false},
		{"ftp://files", "products", "", true},
		{"://bad", "products", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.web+"|"+tc.page, func(t *testing.T) {
			got, err := PageURL(tc.web, tc.page)
			if (err != nil) != tc.wantErr {
				t.Fatalf("PageURL() error = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("PageURL() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCommandHonorsBrowserEnv(t *testing.T) {
	t.Setenv("BROWSER", "/usr/local/bin/mybrowser")
	cmd := command("http://localhost:5000/dashboard")
	if filepath.Base(cmd.Path) != "mybrowser" {
		t.Errorf("cmd.Path = %q, want $BROWSER", cmd.Path)
	}
	if len(cmd.Args) != 2 || cmd.Args[1] != "http://localhost:5000/dashboard" {
		t.Errorf("cmd.Args = %v", cmd.Args)
	}
}
