package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comalice/adis"
	"github.com/comalice/adis/internal/core"
	"github.com/comalice/adis/internal/production"
)

// load restores an instance from disk with the standard collaborators wired.
func (a *app) load(id string) (*core.Instance, core.Persister, error) {
	p, err := a.persister()
	if err != nil {
		return nil, nil, err
	}
	snapshot, err := p.Load(cmdContext(), id)
	if err != nil {
		return nil, nil, err
	}
	inst, err := adis.Restore(snapshot,
		adis.WithTickSource(a.tickSource()),
		adis.WithPersister(p),
		adis.WithRenderer(&production.PNGRenderer{}),
	)
	if err != nil {
		return nil, nil, err
	}
	return inst, p, nil
}

func (a *app) createCmd() *cobra.Command {
	var (
		id         string
		resolution int
		depth      int
		speed      int64
		text       string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new instance, advance it once, optionally encrypt a string",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.persister()
			if err != nil {
				return err
			}
			inst, err := adis.New(adis.Config{
				ID:             id,
				Resolution:     resolution,
				ColorDepth:     depth,
				IterationSpeed: speed,
			},
				adis.WithTickSource(a.tickSource()),
				adis.WithPersister(p),
			)
			if err != nil {
				return err
			}

			ran, err := inst.Advance()
			if err != nil {
				return err
			}
			a.logger.Debug("bootstrapped instance", "id", inst.ID(), "ran", ran)

			if text != "" {
				ciphertext, err := inst.Encrypt(text)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ciphertext)
			}

			if err := inst.Save(cmdContext()); err != nil {
				return err
			}
			a.logger.Info("created instance", "id", inst.ID(),
				"resolution", resolution, "depth", depth, "speed", speed)
			fmt.Fprintln(cmd.OutOrStdout(), inst.ID())
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "instance ID (default: generated UUID)")
	cmd.Flags().IntVar(&resolution, "resolution", 64, "grid side length")
	cmd.Flags().IntVar(&depth, "depth", 8, "number of palette colors")
	cmd.Flags().Int64Var(&speed, "speed", 1, "tick units per automaton step")
	cmd.Flags().StringVar(&text, "text", "", "string to encrypt after creation")
	return cmd
}

func (a *app) advanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advance <id>",
		Short: "Fold in the current external tick and run the due iterations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, _, err := a.load(args[0])
			if err != nil {
				return err
			}
			ran, err := inst.Advance()
			if err != nil {
				return err
			}
			if err := inst.Save(cmdContext()); err != nil {
				return err
			}
			a.logger.Info("advanced instance", "id", inst.ID(),
				"ran", ran, "iterations", inst.Time().IterationCount)
			return nil
		},
	}
}

func (a *app) encryptCmd() *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "encrypt <id>",
		Short: "Encrypt a string against the instance's current grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, _, err := a.load(args[0])
			if err != nil {
				return err
			}
			ciphertext, err := inst.Encrypt(text)
			if err != nil {
				return err
			}
			if err := inst.Save(cmdContext()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ciphertext)
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "string to encrypt")
	cmd.MarkFlagRequired("text")
	return cmd
}

func (a *app) decryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <id> [ciphertext]",
		Short: "Decrypt a hex ciphertext (or the stored one) with the key imprint",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, _, err := a.load(args[0])
			if err != nil {
				return err
			}
			var plaintext string
			if len(args) == 2 {
				plaintext, err = inst.Decrypt(args[1])
			} else {
				plaintext, err = inst.DecryptStored()
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), plaintext)
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print instance metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, _, err := a.load(args[0])
			if err != nil {
				return err
			}
			t := inst.Time()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:              %s\n", inst.ID())
			fmt.Fprintf(out, "resolution:      %d\n", inst.Grid().Resolution())
			fmt.Fprintf(out, "color depth:     %d\n", inst.Palette().Len())
			fmt.Fprintf(out, "iteration speed: %d\n", t.IterationSpeed)
			fmt.Fprintf(out, "ticks:           last=%d now=%d\n", t.LastTick, t.NowTick)
			fmt.Fprintf(out, "iterations:      %d\n", t.IterationCount)
			fmt.Fprintf(out, "key imprint:     %v\n", inst.KeyImprint() != nil)
			fmt.Fprintf(out, "ciphertext:      %s\n", inst.Ciphertext())
			return nil
		},
	}
}

func (a *app) renderCmd() *cobra.Command {
	var (
		size int
		out  string
	)
	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Render the instance's grid to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, _, err := a.load(args[0])
			if err != nil {
				return err
			}
			data, err := inst.Render(size)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			a.logger.Info("rendered instance", "id", inst.ID(), "size", size, "out", out)
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", 256, "output image side length in pixels")
	cmd.Flags().StringVar(&out, "out", "adis.png", "output PNG path")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List persisted instance IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := production.NewArchive(a.settings.Dir)
			if err != nil {
				return err
			}
			ids, err := archive.List()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
