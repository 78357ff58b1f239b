package app

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yacook/yacook/internal/auth"
	"github.com/yacook/yacook/internal/db"
	"github.com/yacook/yacook/internal/db/controller/user"
)

// keyPassword is read from YACOOK_PASSWORD when --password is not given.
const keyPassword = "password"

// ErrUsernameRequired is returned when createsuperuser runs without --username.
var ErrUsernameRequired = errors.New("--username is required")

func init() { //nolint: gochecknoinits
	superuserCmd.Flags().StringVar(&suUsername, "username", "", "Username of the staff account")
	superuserCmd.Flags().StringVar(&suEmail, "email", "", "Email address")
	superuserCmd.Flags().StringVar(&suPassword, "password", "", "Password, also read from YACOOK_PASSWORD")

	rootCmd.AddCommand(superuserCmd)
}

var (
	suUsername string
	suEmail    string
	suPassword string

	superuserCmd = &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create a staff account, or promote an existing one and reset its password",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if suUsername == "" {
				return ErrUsernameRequired
			}

			password := suPassword
			if password == "" {
				password = viper.GetString(keyPassword)
			}

			gdb, err := db.Open(&cfg)
			if err != nil {
				return err //nolint:wrapcheck
			}

			if err := db.Migrate(gdb); err != nil {
				return err //nolint:wrapcheck
			}

			ctx := cmd.Context()
			provider := auth.NewLocalProvider(gdb)

			_, err = provider.CreateUser(ctx, suUsername, suEmail, password, true)
			if !errors.Is(err, user.ErrUsernameTaken) {
				if err == nil {
					cmd.Printf("staff account %q created\n", suUsername)
				}

				return err //nolint:wrapcheck
			}

			if err := provider.SetPassword(ctx, suUsername, password); err != nil {
				return err //nolint:wrapcheck
			}

			if err := provider.SetStaff(ctx, suUsername, true); err != nil {
				return err //nolint:wrapcheck
			}

			cmd.Printf("staff account %q updated\n", suUsername)

			return nil
		},
	}
)
