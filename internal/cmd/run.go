package cmd

import (
	"fmt"
	"strings"

	"github.com/llxisdsh/hwspin"
	"github.com/llxisdsh/hwspin/internal/sim"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the multicore counter scenario",
	Long: `Every core increments a shared counter protected by one hardware
spinlock, locking and unlocking once per increment. The command fails if any
update was lost.

With --mode=trylock each core polls TryLock until --deadline instead of
spinning in Lock.`,
	RunE: runRun,
}

var (
	runJSON bool // Output as JSON
)

func init() {
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Output the report as JSON")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	bank := hwspin.NewSimBank()
	rep, err := sim.Run(cmd.Context(), cfg.Sim, bank, log)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if runJSON {
		if err := writeJSON(out, rep); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "SPINLOCK %d (%s, %d cores)\n", rep.Lock, rep.Mode, rep.Cores)
		fmt.Fprintln(out, strings.Repeat("─", 40))
		fmt.Fprintf(out, "Final value:   %d (want %d)\n", rep.Final, rep.Want)
		fmt.Fprintf(out, "Acquisitions:  %d\n", rep.Acquisitions())
		for core, n := range rep.PerCore {
			fmt.Fprintf(out, "  core %-2d      %d\n", core, n)
		}
		fmt.Fprintf(out, "Bank claims:   %d\n", rep.Bank.Claims)
		fmt.Fprintf(out, "Bank misses:   %d\n", rep.Bank.Misses)
		fmt.Fprintf(out, "Bank status:   %032b\n", bank.Status())
		fmt.Fprintf(out, "Elapsed:       %v\n", rep.Elapsed)
	}

	if rep.Final != rep.Want {
		return fmt.Errorf("lost updates: final value %d, want %d", rep.Final, rep.Want)
	}
	return nil
}
