package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/evergreen-ci/cirrus"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const separator = "------------------------------"

const menu = "\n" + separator +
	"\nPlease select an option:" +
	"\n 1. Create a new secret" +
	"\n 2. List all secrets" +
	"\n Type 'quit' to exit" +
	"\n" + separator + "\n"

const (
	choiceCreate = "1"
	choiceList   = "2"
	choiceQuit   = "quit"
)

// VaultMenu is an interactive menu to create and list the secrets in a vault.
type VaultMenu struct {
	vault cirrus.Vault
	in    *bufio.Scanner
	out   io.Writer
}

// NewVaultMenu creates a menu that reads user input from in and writes to out.
func NewVaultMenu(v cirrus.Vault, in io.Reader, out io.Writer) (*VaultMenu, error) {
	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(v == nil, "must specify a vault")
	catcher.NewWhen(in == nil, "must specify an input")
	catcher.NewWhen(out == nil, "must specify an output")
	if catcher.HasErrors() {
		return nil, catcher.Resolve()
	}

	return &VaultMenu{
		vault: v,
		in:    bufio.NewScanner(in),
		out:   out,
	}, nil
}

// Run shows the menu until the user quits or the input ends. Errors from the
// vault stop the menu and are returned.
func (m *VaultMenu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := m.print(menu); err != nil {
			return err
		}
		choice, ok, err := m.prompt("Enter your choice: ")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		switch strings.ToLower(choice) {
		case choiceCreate:
			if err := m.createSecret(ctx); err != nil {
				return err
			}
		case choiceList:
			if err := m.listSecrets(ctx); err != nil {
				return err
			}
		case choiceQuit:
			return nil
		default:
			if err := m.println("Invalid option. Please enter 1, 2, or 'quit'."); err != nil {
				return err
			}
		}
	}
}

func (m *VaultMenu) createSecret(ctx context.Context) error {
	name, _, err := m.prompt("Enter secret name: ")
	if err != nil {
		return err
	}
	val, _, err := m.prompt("Enter secret value: ")
	if err != nil {
		return err
	}

	if name == "" || val == "" {
		return m.println("Secret name and value cannot be empty.")
	}

	if _, err := m.vault.SetSecret(ctx, *cirrus.NewNamedSecret().SetName(name).SetValue(val)); err != nil {
		return errors.Wrapf(err, "setting secret '%s'", name)
	}
	grip.Debug(message.Fields{
		"message": "created secret from vault menu",
		"name":    name,
	})

	return m.println(fmt.Sprintf("Secret '%s' created successfully.", name))
}

func (m *VaultMenu) listSecrets(ctx context.Context) error {
	if err := m.println("Listing all secrets in the vault:"); err != nil {
		return err
	}

	names, err := m.vault.ListSecretNames(ctx)
	if err != nil {
		return errors.Wrap(err, "listing secret names")
	}

	for _, name := range names {
		val, err := m.vault.GetValue(ctx, name)
		if err != nil {
			return errors.Wrapf(err, "getting value for secret '%s'", name)
		}
		if err := m.println(fmt.Sprintf("\nName: %s \nValue: %s", name, val)); err != nil {
			return err
		}
	}

	return nil
}

// prompt writes the prompt and reads one trimmed line of input. It returns
// false if the input has ended.
func (m *VaultMenu) prompt(p string) (string, bool, error) {
	if err := m.print(p); err != nil {
		return "", false, err
	}
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", false, errors.Wrap(err, "reading input")
		}
		return "", false, nil
	}
	return strings.TrimSpace(m.in.Text()), true, nil
}

func (m *VaultMenu) print(s string) error {
	_, err := io.WriteString(m.out, s)
	return errors.Wrap(err, "writing output")
}

func (m *VaultMenu) println(s string) error {
	return m.print(s + "\n")
}
