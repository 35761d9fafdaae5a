package library

import "github.com/JoeyZhen/Library-BMS/lib/history"

// Account roles. Employees may act on behalf of any visitor; visitors
// only on their own record.
const (
	RoleEmployee = "employee"
	RoleVisitor  = "visitor"
)

// Account is a login for the client protocol. VisitorID is empty for the
// preset administrative account.
type Account struct {
	Username  string
	Role      string
	VisitorID string

	password string
}

// IsEmployee reports whether the account may act for arbitrary visitors.
func (a *Account) IsEmployee() bool {
	return a.Role == RoleEmployee
}

// Accounts is the username-keyed account registry. A visitor can back at
// most one account.
type Accounts struct {
	byName    map[string]*Account
	byVisitor map[string]*Account
}

func newAccounts() *Accounts {
	a := &Accounts{
		byName:    make(map[string]*Account),
		byVisitor: make(map[string]*Account),
	}
	// Preset administrative login, available from the first request.
	a.byName["root"] = &Account{
		Username: "root",
		Role:     RoleEmployee,
		password: "password",
	}
	return a
}

func (a *Accounts) add(acct *Account) {
	a.byName[acct.Username] = acct
	if acct.VisitorID != "" {
		a.byVisitor[acct.VisitorID] = acct
	}
}

func (a *Accounts) remove(acct *Account) {
	delete(a.byName, acct.Username)
	if acct.VisitorID != "" {
		delete(a.byVisitor, acct.VisitorID)
	}
}

// --------------------------------------------------------------------------
// Library Operations
// --------------------------------------------------------------------------

// CreateAccount registers a login for a registered visitor. The username
// must be free, the visitor must exist and not already hold an account,
// and the role must be one of the known roles.
func (l *Library) CreateAccount(username, password, role, visitorID string) (history.Entry, error) {
	if role != RoleEmployee && role != RoleVisitor {
		return nil, ErrInvalidRole
	}
	if _, ok := l.accounts.byName[username]; ok {
		return nil, ErrDuplicateUsername
	}
	if _, ok := l.visitors.Get(visitorID); !ok {
		return nil, ErrUnknownVisitor
	}
	if _, ok := l.accounts.byVisitor[visitorID]; ok {
		return nil, ErrDuplicateAccount
	}

	acct := &Account{
		Username:  username,
		Role:      role,
		VisitorID: visitorID,
		password:  password,
	}
	l.accounts.add(acct)

	entry := history.Funcs{
		Do:   func() { l.accounts.add(acct) },
		Undo: func() { l.accounts.remove(acct) },
	}
	return entry, nil
}

// Authenticate checks a username/password pair and returns the account.
func (l *Library) Authenticate(username, password string) (*Account, bool) {
	acct, ok := l.accounts.byName[username]
	if !ok || acct.password != password {
		return nil, false
	}
	return acct, true
}
