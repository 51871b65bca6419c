package approval

import (
	"errors"
	"fmt"
	"strings"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

type Subject string

const (
	SubjectCompany Subject = "company"
	SubjectWorker  Subject = "worker"
)

var ErrMalformedToken = errors.New("malformed callback token")

// Token is the decision encoded in an inline button. It is validated on
// construction so malformed callback data never reaches dispatch.
type Token struct {
	Action    Action
	Subject   Subject
	AccountID string
}

// NewToken builds a token for the given decision and target account.
func NewToken(action Action, subject Subject, accountID string) Token {
	return Token{
		Action:    action,
		Subject:   subject,
		AccountID: accountID,
	}
}

// ParseToken decodes callback data of the form
// <action>_<subject>_<account-id>.
func ParseToken(data string) (Token, error) {
	parts := strings.SplitN(data, "_", 3)
	if len(parts) != 3 {
		return Token{}, fmt.Errorf("%w: %q", ErrMalformedToken, data)
	}

	action := Action(parts[0])
	if action != ActionApprove && action != ActionReject {
		return Token{}, fmt.Errorf("%w: unknown action %q", ErrMalformedToken, parts[0])
	}

	subject := Subject(parts[1])
	if subject != SubjectCompany && subject != SubjectWorker {
		return Token{}, fmt.Errorf("%w: unknown subject %q", ErrMalformedToken, parts[1])
	}

	if parts[2] == "" {
		return Token{}, fmt.Errorf("%w: missing account id", ErrMalformedToken)
	}

	return Token{Action: action, Subject: subject, AccountID: parts[2]}, nil
}

func (t Token) String() string {
	return fmt.Sprintf("%s_%s_%s", t.Action, t.Subject, t.AccountID)
}
