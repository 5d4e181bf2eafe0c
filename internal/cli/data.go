package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/circle-squared/internal/backup"
	"github.com/tartampluch/circle-squared/internal/config"
	"github.com/tartampluch/circle-squared/internal/engine"
	"github.com/tartampluch/circle-squared/internal/store"
)

func newExportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdExport,
		Short: config.CmdDescExport,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(func(db *store.DB) error {
				friends, err := db.LoadFriends(cmd.Context())
				if err != nil {
					return err
				}

				now := opts.clock.Now()
				path := args[0]
				// A directory receives a dated backup file.
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					path = filepath.Join(path, backup.FileName(now))
				}

				f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, config.FilePermUserRW)
				if err != nil {
					return err
				}
				if err := backup.Export(f, friends, now); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), config.MsgExported, len(friends), path)
				return nil
			})
		},
	}
}

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdImport,
		Short: config.CmdDescImport,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			ctx := cmd.Context()

			return opts.withStore(func(db *store.DB) error {
				switch strings.ToLower(filepath.Ext(path)) {
				case config.ExtJSON:
					f, err := os.Open(path)
					if err != nil {
						return err
					}
					defer func() { _ = f.Close() }()

					friends, err := backup.Import(f)
					if err != nil {
						return err
					}
					if err := db.SaveFriends(ctx, friends); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), config.MsgImportedJSON, len(friends), path)
					return nil

				case config.ExtVCF, config.ExtVCard:
					im := &engine.Importer{Clock: opts.clock}
					imported, err := im.Run(ctx, engine.SourceConfig{Mode: config.SourceModeLocal, LocalPath: path})
					if err != nil {
						return err
					}
					friends, err := db.LoadFriends(ctx)
					if err != nil {
						return err
					}
					for _, f := range imported {
						if friends, err = engine.AddFriend(friends, f); err != nil {
							return err
						}
					}
					if err := db.SaveFriends(ctx, friends); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), config.MsgImportedVCard, len(imported), path)
					return nil

				default:
					return fmt.Errorf("%s: %q", config.ErrUnknownExt, filepath.Ext(path))
				}
			})
		},
	}
}

func newLogCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdLog,
		Short: config.CmdDescLog,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return opts.withStore(func(db *store.DB) error {
				friends, err := db.LoadFriends(ctx)
				if err != nil {
					return err
				}
				target, err := matchFriend(friends, args[0])
				if err != nil {
					return err
				}
				updated, err := engine.LogInteraction(friends, target.ID, opts.clock.Now())
				if err != nil {
					return err
				}
				if err := db.SaveFriends(ctx, updated); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), config.MsgLogged, target.Name)
				return nil
			})
		},
	}
}

// matchFriend resolves a friend by exact id, then by case-insensitive name.
func matchFriend(friends []engine.Friend, query string) (engine.Friend, error) {
	if f, ok := engine.FindFriend(friends, query); ok {
		return f, nil
	}

	var matches []engine.Friend
	for _, f := range friends {
		if strings.EqualFold(strings.TrimSpace(f.Name), strings.TrimSpace(query)) {
			matches = append(matches, f)
		}
	}
	switch len(matches) {
	case 0:
		return engine.Friend{}, fmt.Errorf("%w: %s", engine.ErrFriendNotFound, query)
	case 1:
		return matches[0], nil
	default:
		return engine.Friend{}, fmt.Errorf("%s: %q", config.ErrAmbiguousFriend, query)
	}
}

func newResetCmd(opts *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   config.CmdReset,
		Short: config.CmdDescReset,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New(config.ErrResetNotConfirm)
			}
			return opts.withStore(func(db *store.DB) error {
				if err := db.ClearAll(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), config.MsgReset)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, config.FlagYes, false, config.FlagDescYes)
	return cmd
}
