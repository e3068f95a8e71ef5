package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/bitfsorg/fsdb-go/digest"
)

var errNotFound = errors.New("not found")

func newPutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put KEY [VALUE]",
		Short: "Store a value, reading it from stdin when VALUE is omitted",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value []byte
			if len(args) == 2 {
				value = []byte(args[1])
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				value = data
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = e.Close() }()

			return e.store.Put(args[0], value)
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value stored for KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = e.Close() }()

			value, ok := e.store.Retrieve(args[0])
			if !ok {
				return errNotFound
			}
			_, err = cmd.OutOrStdout().Write(value)
			return err
		},
	}
}

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm KEY",
		Short: "Delete the value stored for KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noCleanup, _ := cmd.Flags().GetBool("no-cleanup")

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = e.Close() }()

			return e.store.Delete(args[0], !noCleanup)
		},
	}
	cmd.Flags().Bool("no-cleanup", false, "keep directories left empty by the deletion")
	return cmd
}

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path KEY",
		Short: "Print the file path that holds KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = e.Close() }()

			p, err := e.store.Path(args[0])
			if err != nil {
				return err
			}
			cmd.Println(p)
			return nil
		},
	}
}

func newHashesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hashes",
		Short: "List the available hash functions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range digest.Names() {
				cmd.Println(name)
			}
		},
	}
}
