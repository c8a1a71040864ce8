package engine

import (
	"context"

	"github.com/tradecircle/backend/pkg/identity"
	"github.com/tradecircle/backend/pkg/models"
	"github.com/tradecircle/backend/pkg/store"
	"github.com/tradecircle/backend/pkg/validate"
)

// CreateAccount registers a new account for caller, an identity with no
// account row yet.
func (e *Engine) CreateAccount(ctx context.Context, caller identity.ID, fullName, nickname, email string) error {
	return e.store.Tx(ctx, func(tx store.Tx) error {
		fullName, nickname, email = validate.Trimmed(fullName), validate.Trimmed(nickname), validate.Trimmed(email)
		if err := requireNonEmptyMax(fullName, validate.MaxFullName, ErrFullNameEmpty, ErrFullNameTooLong); err != nil {
			return err
		}
		if err := requireNonEmptyMax(nickname, validate.MaxNickname, ErrNicknameEmpty, ErrNicknameTooLong); err != nil {
			return err
		}
		if err := requireNonEmptyMax(email, validate.MaxEmail, ErrEmailEmpty, ErrEmailTooLong); err != nil {
			return err
		}
		if _, ok := tx.GetAccount(caller); ok {
			return ErrAccountAlreadyExists
		}
		tx.PutAccount(&models.Account{
			Identity:  caller,
			FullName:  fullName,
			Nickname:  nickname,
			Email:     email,
			CreatedAt: e.clock.NowMicros(),
		})
		return nil
	})
}

// UpdateProfile rewrites caller's nickname and email.
func (e *Engine) UpdateProfile(ctx context.Context, caller identity.ID, nickname, email string) error {
	return e.run(ctx, caller, func(tx store.Tx, ac *AuthContext) error {
		nickname, email = validate.Trimmed(nickname), validate.Trimmed(email)
		if err := requireNonEmptyMax(nickname, validate.MaxNickname, ErrNicknameEmpty, ErrNicknameTooLong); err != nil {
			return err
		}
		if err := requireNonEmptyMax(email, validate.MaxEmail, ErrEmailEmpty, ErrEmailTooLong); err != nil {
			return err
		}
		ac.Account.Nickname = nickname
		ac.Account.Email = email
		tx.PutAccount(ac.Account)
		return nil
	})
}
