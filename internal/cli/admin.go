package cli

import (
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/user/dto"
	userRepoPkg "github.com/fekuna/omnipos-storefront/internal/user/repository"
	userUCPkg "github.com/fekuna/omnipos-storefront/internal/user/usecase"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type CreateAdminOptions struct {
	*RootOptions
	Email    string
	Password string
}

// NewCreateAdminCommand bootstraps an administrator. No HTTP route can grant
// the admin flag.
func NewCreateAdminCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateAdminOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin user, or promote an existing one and reset its password",
		Example: `  storefront create-admin --email admin@example.com --password 's3cret'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return createAdmin(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "admin email (required)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "admin password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func createAdmin(cmd *cobra.Command, opts *CreateAdminOptions) error {
	cfg := opts.loadConfig()
	log := newLogger(cfg)
	defer log.Sync()

	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	tokens, err := auth.NewJWTMaker(cfg.JWT.SecretKey, cfg.JWT.TTL)
	if err != nil {
		return err
	}

	uc := userUCPkg.NewUserUseCase(
		userRepoPkg.NewSQLRepository(),
		database.NewTxManager(db),
		auth.NewBcryptHasher(bcrypt.DefaultCost),
		tokens,
		log,
	)

	u, err := uc.CreateAdmin(cmd.Context(), &dto.CredentialsInput{Email: opts.Email, Password: opts.Password})
	if err != nil {
		return err
	}
	log.Info("Admin ready", zap.Int64("user_id", u.ID), zap.String("email", u.Email))
	return nil
}
