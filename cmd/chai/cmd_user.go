package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var userSetPasswordFlags struct {
	password string
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Usuários da API (somente backends SQL)",
}

var userSetPasswordCmd = &cobra.Command{
	Use:   "set-password USERNAME",
	Short: "Cria o usuário ou troca a senha, gravando o hash bcrypt",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserSetPassword,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista os usuários gravados no banco",
	RunE:  runUserList,
}

func init() {
	f := userSetPasswordCmd.Flags()
	f.StringVar(&userSetPasswordFlags.password, "password", "", "Nova senha (obrigatório)")
	_ = userSetPasswordCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userSetPasswordCmd, userListCmd)
}

func runUserSetPassword(cmd *cobra.Command, args []string) error {
	if err := services.Authenticator.SetPassword(cmd.Context(), args[0], userSetPasswordFlags.password); err != nil {
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Senha de %s gravada\n", args[0])
	return err
}

func runUserList(cmd *cobra.Command, _ []string) error {
	if services.Storage.Users == nil {
		return fmt.Errorf("o backend %s não guarda usuários; use AUTH_USERS", cfg.Storage.Backend)
	}

	usernames, err := services.Storage.Users.ListUsernames(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if done, err := printJSON(out, usernames); done {
		return err
	}
	for _, username := range usernames {
		fmt.Fprintln(out, username)
	}
	return nil
}
