package gatectl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/server/verifier"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword and isTerminal are test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

func newHashCmd() *cobra.Command {
	var scheme string

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Turn a secret into a stored verifier",
		Long: `Reads a secret (without echo when stdin is a terminal, otherwise the
first line of stdin) and prints the verifier to store for it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := verifier.New(scheme)
			if err != nil {
				return err
			}

			secret, err := readSecret(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer common.WipeByteArray(secret)
			if len(secret) == 0 {
				return errors.New("empty secret")
			}

			stored, err := v.Hash(string(secret))
			if err != nil {
				return fmt.Errorf("hash: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), stored)
			return nil
		},
	}

	cmd.Flags().StringVar(&scheme, "scheme", verifier.SchemeBcrypt, "verifier scheme: bcrypt, argon2id or plain")
	return cmd
}

func readSecret(in io.Reader, prompt io.Writer) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if in == os.Stdin && isTerminal(fd) {
		fmt.Fprint(prompt, "Secret: ")
		b, err := readPassword(fd)
		fmt.Fprintln(prompt)
		return b, err
	}

	line, err := bufio.NewReader(in).ReadBytes('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return nil, fmt.Errorf("read secret: %w", err)
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, nil
}
