package cli

import "testing"

func TestParseCommand(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		args     []string
		wantCmd  string
		wantRest []string
		wantErr  bool
	}{
		{
			name:     "plain command",
			args:     []string{"login", "--email", "a@b.com"},
			wantCmd:  CmdLogin,
			wantRest: []string{"--email", "a@b.com"},
		},
		{
			name:    "alias",
			args:    []string{"b", "--pickup", "X"},
			wantCmd: CmdBook,
		},
		{
			name:    "unknown command",
			args:    []string{"teleport"},
			wantErr: true,
		},
		{
			name:    "no command",
			args:    []string{"--verbose"},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, rest, err := ParseCommand(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got cmd=%q", cmd)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cmd != tc.wantCmd {
				t.Errorf("cmd = %q, want %q", cmd, tc.wantCmd)
			}
			if tc.wantRest != nil {
				if len(rest) != len(tc.wantRest) {
					t.Fatalf("rest = %v, want %v", rest, tc.wantRest)
				}
				for i := range rest {
					if rest[i] != tc.wantRest[i] {
						t.Fatalf("rest = %v, want %v", rest, tc.wantRest)
					}
				}
			}
		})
	}
}
