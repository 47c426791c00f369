package cmd

import (
	"fmt"
	"strings"

	"github.com/llxisdsh/hwspin"
	"github.com/llxisdsh/hwspin/internal/sim"
	"github.com/spf13/cobra"
)

var contendCmd = &cobra.Command{
	Use:   "contend",
	Short: "Check that TryLock refuses while the lock is held",
	Long: `Core 0 takes the spinlock and keeps it for --hold. Every other core
polls TryLock meanwhile; each poll must be refused without blocking, and
every core must get the lock once core 0 releases it.`,
	RunE: runContend,
}

var (
	contendJSON bool // Output as JSON
)

func init() {
	contendCmd.Flags().BoolVar(&contendJSON, "json", false, "Output the report as JSON")
	rootCmd.AddCommand(contendCmd)
}

func runContend(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	if cfg.Sim.Cores < 2 {
		return fmt.Errorf("contend needs at least 2 cores, got %d", cfg.Sim.Cores)
	}

	bank := hwspin.NewSimBank()
	rep, err := sim.Contend(cmd.Context(), cfg.Sim, bank, log)
	if err != nil {
		return fmt.Errorf("contend failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if contendJSON {
		return writeJSON(out, rep)
	}

	fmt.Fprintf(out, "SPINLOCK %d contend\n", rep.Lock)
	fmt.Fprintln(out, strings.Repeat("─", 40))
	fmt.Fprintf(out, "Held by core 0: %v\n", rep.Held)
	for core := 1; core < len(rep.Refused); core++ {
		fmt.Fprintf(out, "  core %-2d       refused %d, waited %v\n", core, rep.Refused[core], rep.Waited[core])
	}
	fmt.Fprintf(out, "Bank claims:    %d\n", rep.Bank.Claims)
	fmt.Fprintf(out, "Bank misses:    %d\n", rep.Bank.Misses)
	return nil
}
