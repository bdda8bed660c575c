package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/you/estately/domain"
)

func newLoginCmd() *cobra.Command {
	var phone string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in or register with a phone number",
		Long:  "Request an OTP for a phone number, verify it, and complete either login or first-time registration.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)
			ctx := cmd.Context()
			sessions := container.Sessions

			if current := sessions.Current(); current != nil {
				fmt.Printf("Already signed in as %s (%s). Run `estately logout` first to switch accounts.\n",
					current.Profile.Name, current.Profile.ContactNo)
				return nil
			}

			if phone == "" {
				var err error
				phone, err = prompt(reader, "Phone number (10 digits): ")
				if err != nil {
					return err
				}
			}

			classification, err := sessions.StartAuth(ctx, phone)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidPhone) {
					return fmt.Errorf("phone number must be exactly 10 digits")
				}
				return fmt.Errorf("start auth: %w", err)
			}
			if classification == domain.ClassificationSignup {
				fmt.Println("No account for this number yet. Verify the OTP to register.")
			}

			code, err := prompt(reader, "OTP: ")
			if err != nil {
				return err
			}
			outcome, err := sessions.VerifyOTP(ctx, phone, code)
			if err != nil {
				return fmt.Errorf("verify OTP: %w", err)
			}

			var session *domain.Session
			switch outcome {
			case domain.ProceedToLogin:
				// VerifyOTP already completed the sign-in.
				session = sessions.Current()
			case domain.ProceedToSignup:
				name, err := prompt(reader, "Name: ")
				if err != nil {
					return err
				}
				email, err := prompt(reader, "Email: ")
				if err != nil {
					return err
				}
				session, err = sessions.Signup(ctx, domain.SignupData{Name: name, Email: email, ContactNo: phone})
				if err != nil {
					if errors.Is(err, domain.ErrEmailTaken) {
						return fmt.Errorf("email already registered")
					}
					return fmt.Errorf("signup: %w", err)
				}
			}
			if session == nil {
				return fmt.Errorf("no session established")
			}

			fmt.Printf("Signed in as %s (%s)\n", session.Profile.Name, session.Profile.ContactNo)
			if session.Role == domain.RoleAdmin {
				fmt.Println("Admin capabilities enabled.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Phone number (prompted if omitted)")
	return cmd
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
