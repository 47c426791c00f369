package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/llxisdsh/hwspin/internal/sim"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// resetFlags puts every flag of root and its subcommands back to its default,
// since cobra keeps parsed values between executions.
func resetFlags(root *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	root.PersistentFlags().VisitAll(reset)
	for _, c := range root.Commands() {
		c.Flags().VisitAll(reset)
	}
}

// executeCommand runs a cobra command with args and returns captured output.
// Viper is global, so it is reset and rebound for every execution.
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	resetFlags(root)
	viper.Reset()
	bindFlags(root.PersistentFlags())
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "hwspin-sim" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "hwspin-sim")
	}
	cmdMap := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		cmdMap[c.Name()] = true
	}
	for _, name := range []string{"run", "contend"} {
		if !cmdMap[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRunCommandText(t *testing.T) {
	out, err := executeCommand(rootCmd, "run", "--lock", "7", "--cores", "2", "--iterations", "10", "--mode", "lock")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"SPINLOCK 7", "Final value:   20 (want 20)", "Acquisitions:  20"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunCommandJSON(t *testing.T) {
	out, err := executeCommand(rootCmd, "run", "--json", "--lock", "3", "--cores", "4", "--iterations", "25", "--mode", "trylock")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var rep sim.Report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if rep.Lock != 3 || rep.Mode != "trylock" {
		t.Errorf("report = %+v", rep)
	}
	if rep.Final != 100 || rep.Acquisitions() != 100 {
		t.Errorf("final = %d, acquisitions = %d, want 100", rep.Final, rep.Acquisitions())
	}
}

func TestRunCommandInvalidConfig(t *testing.T) {
	_, err := executeCommand(rootCmd, "run", "--lock", "32", "--mode", "lock")
	if err == nil || !strings.Contains(err.Error(), "sim.lock") {
		t.Fatalf("err = %v, want sim.lock validation error", err)
	}
}

func TestRunCommandConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hwspin.yaml")
	data := "sim:\n  cores: 3\n  iterations: 4\nlogging:\n  level: error\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := executeCommand(rootCmd, "run", "--json", "--config", path, "--lock", "9", "--mode", "lock")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var rep sim.Report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if rep.Cores != 3 || rep.Final != 12 {
		t.Errorf("cores = %d, final = %d; want 3, 12", rep.Cores, rep.Final)
	}

	// The file must not leak into the next execution.
	out, err = executeCommand(rootCmd, "run", "--json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	rep = sim.Report{}
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if rep.Cores != 2 || rep.Lock != 7 || rep.Final != 20 {
		t.Errorf("cores = %d, lock = %d, final = %d; want defaults 2, 7, 20", rep.Cores, rep.Lock, rep.Final)
	}
	if got := viper.GetString("config"); got != "" {
		t.Errorf("config = %q after reset, want empty", got)
	}
}

func TestContendCommand(t *testing.T) {
	out, err := executeCommand(rootCmd, "contend", "--lock", "4", "--cores", "3", "--hold", "30ms", "--deadline", "5s")
	if err != nil {
		t.Fatalf("contend: %v", err)
	}
	if !strings.Contains(out, "SPINLOCK 4 contend") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
