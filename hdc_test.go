package main

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTargetID(t *testing.T) {
	valid := []string{
		"FMR0223C13000649",
		"127.0.0.1:5555",
		"device-01.local",
	}
	for _, serial := range valid {
		if err := ValidateTargetID(serial); err != nil {
			t.Errorf("ValidateTargetID(%q) = %v, want nil", serial, err)
		}
	}

	invalid := []string{
		"",
		"serial with spaces",
		"serial;rm -rf /",
		"serial$(cmd)",
		strings.Repeat("a", 257),
	}
	for _, serial := range invalid {
		if err := ValidateTargetID(serial); err == nil {
			t.Errorf("ValidateTargetID(%q) should fail", serial)
		}
	}
}

func TestParseTargetLines(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []string
	}{
		{
			"plain serials",
			"FMR0223C13000649\n10.0.0.5:5555\n",
			[]string{"FMR0223C13000649", "10.0.0.5:5555"},
		},
		{
			"empty marker",
			"[Empty]\nEmpty\n",
			nil,
		},
		{
			"usb chatter and blanks",
			"\nFMR0223C13000649\nusb:1-2\nCOM3 usb:9-1\n  \n",
			[]string{"FMR0223C13000649"},
		},
		{
			"bracketed status lines",
			"[connected]\nFMR0223C13000649\n",
			[]string{"FMR0223C13000649"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets := parseTargetLines(tt.out)
			var got []string
			for _, tg := range targets {
				got = append(got, tg.Serial)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"surrounded by noise", `dump saved {"a":{"b":2}} done`, `{"a":{"b":2}}`},
		{"braces inside strings", `{"a":"}{","b":1}`, `{"a":"}{","b":1}`},
		{"escaped quote in string", `{"a":"say \"}\"","b":1}`, `{"a":"say \"}\"","b":1}`},
		{"unbalanced", `{"a":1`, ""},
		{"no object", "nothing here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSONObject(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuoteShellArg(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "''"},
		{"hello", "'hello'"},
		{"two words", "'two words'"},
		{"it's", `'it'\''s'`},
		{"$HOME;ls", "'$HOME;ls'"},
	}
	for _, tt := range tests {
		if got := quoteShellArg(tt.in); got != tt.want {
			t.Errorf("quoteShellArg(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCommandError(t *testing.T) {
	t.Run("timeout message", func(t *testing.T) {
		err := &CommandError{Cmd: "hdc shell date", Timeout: true}
		if !strings.Contains(err.Error(), "timed out") {
			t.Errorf("timeout error should say so, got %q", err.Error())
		}
	})

	t.Run("output detail", func(t *testing.T) {
		err := &CommandError{Cmd: "hdc shell x", Output: "command not found\n", ExitCode: 127}
		if !strings.Contains(err.Error(), "command not found") {
			t.Errorf("error should carry the output, got %q", err.Error())
		}
	})

	t.Run("exit code fallback", func(t *testing.T) {
		err := &CommandError{Cmd: "hdc shell x", ExitCode: 1}
		if !strings.Contains(err.Error(), "exit code 1") {
			t.Errorf("error should carry the exit code, got %q", err.Error())
		}
	})

	t.Run("unwrap", func(t *testing.T) {
		inner := errors.New("inner")
		err := &CommandError{Err: inner}
		if !errors.Is(err, inner) {
			t.Error("CommandError should unwrap to the inner error")
		}
	})
}

func TestHdcCmd(t *testing.T) {
	app := NewApp("serial1", DefaultConfig())

	got := app.hdcCmd([]string{"shell", "date"}, true)
	want := []string{"hdc", "-t", "serial1", "shell", "date"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("got %v, want %v", got, want)
	}

	got = app.hdcCmd([]string{"list", "targets"}, false)
	if strings.Join(got, " ") != "hdc list targets" {
		t.Errorf("target flag must be omitted, got %v", got)
	}

	noSerial := NewApp("", DefaultConfig())
	got = noSerial.hdcCmd([]string{"shell", "date"}, true)
	if strings.Join(got, " ") != "hdc shell date" {
		t.Errorf("empty serial must not add -t, got %v", got)
	}
}
