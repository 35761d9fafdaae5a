package dispatch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/JoeyZhen/Library-BMS/lib/books"
	"github.com/JoeyZhen/Library-BMS/lib/clock"
	"github.com/JoeyZhen/Library-BMS/lib/library"
)

// command describes one protocol operation: its name, the required
// parameter display names (used verbatim in missing-parameters
// responses), and the handler. Handlers return the response body after
// the client id, starting with the command name.
type command struct {
	name   string
	params []string
	run    func(d *Dispatcher, s *Session, args []string) string
}

// commands builds the registry. Parameter display names follow the
// protocol documentation; optional trailing arguments (visitor ids,
// query filters, sort keys) are not listed.
func commands() map[string]*command {
	list := []*command{
		{name: "disconnect", run: runDisconnect},
		{name: "login", params: []string{"username", "password"}, run: runLogin},
		{name: "logout", run: runLogout},
		{name: "create", params: []string{"username", "password", "role", "visitor ID"}, run: runCreate},
		{name: "register", params: []string{"first-name", "last-name", "address", "phone-number"}, run: runRegister},
		{name: "arrive", run: runArrive},
		{name: "depart", run: runDepart},
		{name: "buy", params: []string{"quantity", "id"}, run: runBuy},
		{name: "borrow", params: []string{"{id}"}, run: runBorrow},
		{name: "borrowed", run: runBorrowed},
		{name: "return", params: []string{"visitor-id", "id"}, run: runReturn},
		{name: "pay", params: []string{"amount"}, run: runPay},
		{name: "search", params: []string{"title"}, run: runSearch},
		{name: "info", params: []string{"title", "{authors}"}, run: runInfo},
		{name: "service", params: []string{"info-service"}, run: runService},
		{name: "report", run: runReport},
		{name: "advance", params: []string{"number-of-days"}, run: runAdvance},
		{name: "datetime", run: runDatetime},
		{name: "undo", run: runUndo},
		{name: "redo", run: runRedo},
	}

	byName := make(map[string]*command, len(list))
	for _, c := range list {
		byName[c.name] = c
	}
	return byName
}

// missingParams renders the missing-parameters body for the declared
// parameters not covered by the given arguments.
func (c *command) missingParams(args []string) string {
	return fmt.Sprintf("%s,missing-parameters,{%s}",
		c.name, strings.Join(c.params[len(args):], ","))
}

// --------------------------------------------------------------------------
// Session Commands
// --------------------------------------------------------------------------

func runDisconnect(d *Dispatcher, s *Session, args []string) string {
	d.sessions.Disconnect(s.ID)
	return "disconnect"
}

func runLogin(d *Dispatcher, s *Session, args []string) string {
	if s.Account != nil {
		return "login,already-logged-in"
	}
	acct, ok := d.lib.Authenticate(args[0], args[1])
	if !ok {
		return "login,bad-username-or-password"
	}
	s.Account = acct
	return "login,success"
}

func runLogout(d *Dispatcher, s *Session, args []string) string {
	if s.Account == nil {
		return "logout,not-authorized"
	}
	s.Account = nil
	return "logout,success"
}

func runCreate(d *Dispatcher, s *Session, args []string) string {
	if s.Account == nil || !s.Account.IsEmployee() {
		return "create,not-authorized"
	}
	entry, err := d.lib.CreateAccount(args[0], args[1], args[2], args[3])
	switch {
	case errors.Is(err, library.ErrDuplicateUsername):
		return "create,duplicate-username"
	case errors.Is(err, library.ErrUnknownVisitor):
		return "create,invalid-visitor"
	case errors.Is(err, library.ErrDuplicateAccount):
		return "create,duplicate-visitor"
	case errors.Is(err, library.ErrInvalidRole):
		return "create,invalid-role"
	}
	d.lib.History().Commit(entry)
	return "create,success"
}

// --------------------------------------------------------------------------
// Visitor Commands
// --------------------------------------------------------------------------

func runRegister(d *Dispatcher, s *Session, args []string) string {
	visitor, entry, err := d.lib.RegisterVisitor(args[0], args[1], args[2], args[3])
	if errors.Is(err, library.ErrDuplicateVisitor) {
		return "register,duplicate"
	}
	d.lib.History().Commit(entry)
	return fmt.Sprintf("register,%s,%s", visitor.ID, visitor.Registered.FormatDateTime())
}

func runArrive(d *Dispatcher, s *Session, args []string) string {
	visitorID := ""
	if len(args) > 0 {
		visitorID = args[0]
	}

	visit, entry, err := d.lib.BeginVisit(visitorID)
	switch {
	case errors.Is(err, library.ErrUnknownVisitor):
		return "arrive,invalid-id"
	case errors.Is(err, library.ErrLibraryClosed):
		return "arrive,closed"
	case errors.Is(err, library.ErrOpenVisit):
		return "arrive,duplicate"
	}
	d.lib.History().Commit(entry)
	return fmt.Sprintf("arrive,%s,%s,%s",
		visit.VisitorID, visit.Arrived.FormatDate(), visit.Arrived.Time.Format())
}

func runDepart(d *Dispatcher, s *Session, args []string) string {
	explicit := ""
	if len(args) > 0 {
		explicit = args[0]
	}

	visit, entry, err := d.lib.EndVisit(s.visitorID(explicit))
	if err != nil {
		return "depart,invalid-id"
	}
	d.lib.History().Commit(entry)
	return fmt.Sprintf("depart,%s,%s,%s",
		visit.VisitorID, visit.Departed.Time.Format(),
		clock.TimeFromSeconds(visit.Duration()).Format())
}

// --------------------------------------------------------------------------
// Inventory Commands
// --------------------------------------------------------------------------

func runBuy(d *Dispatcher, s *Session, args []string) string {
	quantity, err := strconv.Atoi(args[0])
	if err != nil || quantity < 1 {
		return fmt.Sprintf("buy,invalid-quantity,%s", args[0])
	}
	ids, bad, ok := parseIDs(args[1:])
	if !ok {
		return fmt.Sprintf("buy,invalid-book-id,%s", bad)
	}

	lines, entry, err := d.lib.Buy(quantity, ids)
	if errors.Is(err, library.ErrUnknownBook) {
		return "buy,invalid-book-id"
	}
	d.lib.History().Commit(entry)

	var b strings.Builder
	fmt.Fprintf(&b, "buy,%d", len(lines))
	for _, line := range lines {
		fmt.Fprintf(&b, "\n%s,%s,%s,%s,%d,",
			line.ISBN, line.Title, line.FormatAuthors(),
			line.Published.FormatDate(), line.Added)
	}
	return b.String()
}

func runSearch(d *Dispatcher, s *Session, args []string) string {
	records, err := d.lib.SearchStore(storeQuery(args))
	if errors.Is(err, books.ErrInvalidSortOrder) {
		return "search,invalid-sort-order"
	}
	if err != nil {
		return "search,service-unavailable"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "search,%d", len(records))
	for _, r := range records {
		fmt.Fprintf(&b, "\n%d,%s,%s,%s,%s,",
			r.ID, r.ISBN, r.Title, r.FormatAuthors(), r.Published.FormatDate())
	}
	return b.String()
}

func runInfo(d *Dispatcher, s *Session, args []string) string {
	results, err := d.lib.SearchShelf(storeQuery(args))
	if errors.Is(err, books.ErrInvalidSortOrder) {
		return "info,invalid-sort-order"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "info,%d", len(results))
	for _, o := range results {
		fmt.Fprintf(&b, "\n%d,%d,%s,%q,%s,%s,",
			o.Available(), o.ID, o.ISBN, o.Title,
			o.FormatAuthors(), o.Published.FormatDate())
	}
	return b.String()
}

func runService(d *Dispatcher, s *Session, args []string) string {
	if err := d.lib.SelectService(args[0]); err != nil {
		return "service,invalid-service"
	}
	return "service,success"
}

// storeQuery maps positional search arguments (title, authors, isbn,
// publisher, sort) onto a book query. Trailing arguments are optional.
func storeQuery(args []string) books.Query {
	q := books.Query{Title: args[0]}
	if len(args) > 1 {
		q.Authors = queryAuthors(args[1])
	}
	if len(args) > 2 {
		q.ISBN = args[2]
	}
	if len(args) > 3 {
		q.Publisher = args[3]
	}
	if len(args) > 4 {
		q.Sort = books.SortOrder(args[4])
	}
	return q
}

// queryAuthors parses the authors argument, which may be a brace group,
// a single bare name, or a wildcard.
func queryAuthors(arg string) []string {
	if arg == "" || arg == books.Wildcard {
		return nil
	}
	return splitGroup(arg)
}

// --------------------------------------------------------------------------
// Lending Commands
// --------------------------------------------------------------------------

func runBorrow(d *Dispatcher, s *Session, args []string) string {
	explicit := ""
	if len(args) > 1 {
		explicit = args[1]
	}
	ids, _, ok := parseIDs(splitGroup(args[0]))
	if !ok {
		return "borrow,invalid-book-id"
	}

	due, entry, err := d.lib.Borrow(s.visitorID(explicit), ids)
	var fineErr *library.OutstandingFineError
	switch {
	case errors.Is(err, library.ErrUnknownVisitor):
		return "borrow,invalid-visitor-id"
	case errors.Is(err, library.ErrUnknownBook):
		return "borrow,invalid-book-id"
	case errors.Is(err, library.ErrBookLimit):
		return "borrow,book-limit-exceeded"
	case errors.As(err, &fineErr):
		return fmt.Sprintf("borrow,outstanding-fine,%d", fineErr.Balance)
	}
	d.lib.History().Commit(entry)
	return "borrow," + due.FormatDate()
}

func runBorrowed(d *Dispatcher, s *Session, args []string) string {
	explicit := ""
	if len(args) > 0 {
		explicit = args[0]
	}
	visitorID := s.visitorID(explicit)
	if _, ok := d.lib.Visitor(visitorID); !ok {
		return "borrowed,invalid-visitor-id"
	}

	loans := d.lib.Loans(visitorID)
	var b strings.Builder
	fmt.Fprintf(&b, "borrowed,%d", len(loans))
	for _, loan := range loans {
		fmt.Fprintf(&b, "\n%d,%s,%s,%s",
			loan.BookID, loan.ISBN, loan.Title, loan.Borrowed.FormatDate())
	}
	return b.String()
}

func runReturn(d *Dispatcher, s *Session, args []string) string {
	ids, _, ok := parseIDs(args[1:])
	if !ok {
		return "return,invalid-book-id"
	}

	result, entry, err := d.lib.Return(args[0], ids)
	if errors.Is(err, library.ErrUnknownVisitor) {
		return "return,invalid-visitor-id"
	}
	if entry != nil {
		d.lib.History().Commit(entry)
	}

	var b strings.Builder
	b.WriteString("return,")
	switch {
	case result.OverdueFee > 0:
		fmt.Fprintf(&b, "overdue,%d", result.OverdueFee)
		for _, id := range result.OverdueIDs {
			fmt.Fprintf(&b, ",%d", id)
		}
	case result.Invalid:
		fmt.Fprintf(&b, "invalid-book-id,%d", result.InvalidID)
		return b.String()
	default:
		b.WriteString("success")
	}
	if result.Invalid {
		fmt.Fprintf(&b, ",invalid-book-id,%d", result.InvalidID)
	}
	return b.String()
}

func runPay(d *Dispatcher, s *Session, args []string) string {
	amount, err := strconv.Atoi(args[0])
	if err != nil {
		return "pay,amount-not-a-number"
	}
	explicit := ""
	if len(args) > 1 {
		explicit = args[1]
	}

	balance, entry, payErr := d.lib.Pay(s.visitorID(explicit), amount)
	var amountErr *library.InvalidAmountError
	switch {
	case errors.Is(payErr, library.ErrUnknownVisitor):
		return "pay,invalid-visitor-id"
	case errors.As(payErr, &amountErr):
		return fmt.Sprintf("pay,invalid-amount,%d,%d", amountErr.Attempted, amountErr.Balance)
	}
	d.lib.History().Commit(entry)
	return fmt.Sprintf("pay,success,%d", balance)
}

// --------------------------------------------------------------------------
// Time, Reports, History
// --------------------------------------------------------------------------

func runAdvance(d *Dispatcher, s *Session, args []string) string {
	days, err := strconv.Atoi(args[0])
	if err != nil {
		return "advance,days-not-a-number"
	}
	if days < 0 || days > 7 {
		return fmt.Sprintf("advance,invalid-number-of-days,%d", days)
	}

	hours := 0
	if len(args) > 1 {
		hours, err = strconv.Atoi(args[1])
		if err != nil {
			return "advance,hours-not-a-number"
		}
		if hours < 0 || hours > 23 {
			return fmt.Sprintf("advance,invalid-number-of-hours,%d", hours)
		}
	}

	d.lib.AdvanceClock(days, hours)
	return "advance,success"
}

func runDatetime(d *Dispatcher, s *Session, args []string) string {
	now := d.lib.Clock().Now()
	return fmt.Sprintf("datetime,%s,%s", now.FormatDate(), now.Time.Format())
}

func runReport(d *Dispatcher, s *Session, args []string) string {
	windowDays := 0
	if len(args) > 0 {
		days, err := strconv.Atoi(args[0])
		if err != nil {
			return "report,days-not-a-number"
		}
		windowDays = days
	}
	return "report," + d.lib.GenerateReport(windowDays).Format()
}

func runUndo(d *Dispatcher, s *Session, args []string) string {
	if err := d.lib.History().Undo(); err != nil {
		return "undo,cannot-undo"
	}
	return "undo,success"
}

func runRedo(d *Dispatcher, s *Session, args []string) string {
	if err := d.lib.History().Redo(); err != nil {
		return "redo,cannot-redo"
	}
	return "redo,success"
}
