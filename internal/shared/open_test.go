package shared

import (
	"os/exec"
	"strings"
	"testing"
)

func TestOpenFile(t *testing.T) {
	origRuntime, origStart := getRuntime, startCmd
	t.Cleanup(func() { getRuntime, startCmd = origRuntime, origStart })

	tests := []struct {
		goos    string
		program string
		wantErr bool
	}{
		{goos: "darwin", program: "open"},
		{goos: "linux", program: "xdg-open"},
		{goos: "windows", program: "cmd"},
		{goos: "plan9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			var started *exec.Cmd
			getRuntime = func() string { return tt.goos }
			startCmd = func(cmd *exec.Cmd) error {
				started = cmd
				return nil
			}

			err := OpenFile("brief-musical.pdf")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unsupported platform")
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenFile() error = %v", err)
			}
			if started == nil {
				t.Fatal("expected command to be started")
			}
			if started.Args[0] != tt.program {
				t.Errorf("expected program %s, got %s", tt.program, started.Args[0])
			}
			last := started.Args[len(started.Args)-1]
			if !strings.HasSuffix(last, "brief-musical.pdf") {
				t.Errorf("expected absolute path to pdf, got %s", last)
			}
		})
	}
}
