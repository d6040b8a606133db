package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maynagashev/inventory/client/internal/controller"
)

const (
	flagUsername = "username"
	flagPassword = "password"
)

// newLoginCmd - вход без TUI: токен сохраняется в хранилище сессии.
func newLoginCmd(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Войти и сохранить сессию",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			c := controller.NewLogin(ctx, a.api, a.sessions)
			defer c.Close()
			// Ждем проверки уже сохраненной сессии, чтобы ее ошибка не смешалась с ошибкой входа
			c.Wait()
			c.ClearError()

			c.SetUsername(username)
			c.SetPassword(password)
			c.Submit(ctx)
			st := c.State()
			if st.Error != "" {
				return errors.New(st.Error)
			}

			c.ResolveAccount(ctx)
			if id := c.State().AccountID; id != 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Вход выполнен, id пользователя: %d\n", id)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Вход выполнен")
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, flagUsername, "u", "", "Имя пользователя")
	cmd.Flags().StringVarP(&password, flagPassword, "p", "", "Пароль")
	_ = cmd.MarkFlagRequired(flagUsername)
	_ = cmd.MarkFlagRequired(flagPassword)
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Завершить сессию",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := controller.NewLogout(a.api, a.sessions)
			defer c.Close()
			c.Logout(cmd.Context())
			st := c.State()
			switch {
			case st.Error != "":
				return errors.New(st.Error)
			case st.LogoutOK:
				fmt.Fprintln(cmd.OutOrStdout(), "Выход выполнен")
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "Активной сессии не было")
			}
			return nil
		},
	}
}

func newAccountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Показать id пользователя текущей сессии",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := controller.NewLogin(cmd.Context(), a.api, a.sessions)
			defer c.Close()
			c.Wait()
			st := c.State()
			if st.Error != "" {
				return errors.New(st.Error)
			}
			if st.AccountID == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Нет активной сессии")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", st.AccountID)
			return nil
		},
	}
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Список категорий",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := controller.NewCategories(cmd.Context(), a.api)
			defer c.Close()
			c.Wait()
			st := c.State()
			if st.Error != "" {
				return errors.New(st.Error)
			}
			for _, cat := range st.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", cat.ID, cat.Name)
			}
			return nil
		},
	}
}

func newItemsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "items <categoryId>",
		Short: "Предметы категории",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := controller.Params{controller.ParamCategoryID: args[0]}
			if params.ID(controller.ParamCategoryID) == 0 {
				return fmt.Errorf("некорректный id категории %q", args[0])
			}
			c := controller.NewRentalItems(cmd.Context(), params, a.api)
			defer c.Close()
			c.Wait()
			st := c.State()
			if st.Error != "" {
				return errors.New(st.Error)
			}
			for _, it := range st.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", it.ID, it.Name)
			}
			return nil
		},
	}
}
