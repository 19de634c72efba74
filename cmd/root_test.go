package cmd

import "testing"

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"start":  false,
		"status": false,
		"wipe":   false,
		"config": false,
	}

	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("command %q is not registered", name)
		}
	}
}

func TestConfigSetCommand_RequiresTwoArgs(t *testing.T) {
	if err := configSetCmd.Args(configSetCmd, []string{"durations.zone"}); err == nil {
		t.Error("one argument should be rejected")
	}
	if err := configSetCmd.Args(configSetCmd, []string{"durations.zone", "30"}); err != nil {
		t.Errorf("two arguments should pass: %v", err)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	if rootCmd.Use != "zenflowz" {
		t.Errorf("Use = %q, want zenflowz", rootCmd.Use)
	}
	if rootCmd.RunE == nil {
		t.Error("the bare command should open the timer")
	}
}
