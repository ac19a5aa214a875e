package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/easybank/portal/internal/config"
	"github.com/easybank/portal/internal/gateway"
	"github.com/easybank/portal/internal/ledger"
	"github.com/easybank/portal/internal/logging"
	"github.com/easybank/portal/internal/model"
	"github.com/easybank/portal/internal/service"
	"github.com/easybank/portal/internal/session"
	"github.com/easybank/portal/internal/statement"
)

func usage() {
	fmt.Fprintf(os.Stderr, `EasyBank portal client

Usage:
  portal <command> [flags]

Commands:
  login           -email -password
  logout
  whoami
  register        -name -email -password -confirm [-mobile]
  accounts        list accounts
  account-create  -type [-branch]
  account-delete  -number
  balance         [-by account|card] [-all] [-limit N] [-debug]
  statement       -out file.html [-by account|card] [-key K]
  cards           list cards
  card-create     -type -holder
  card-delete     -id
  loans           list loans
  notices         list notices
`)
}

type app struct {
	logger  *logrus.Logger
	cfg     *config.Config
	service *service.Service
}

func main() {
	logger := logging.SetupLogging()

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	store := session.NewFileStore(envConfig.SessionFile)
	gw, err := gateway.NewClient(
		envConfig.APIBaseURL,
		store,
		logger,
		time.Duration(envConfig.HTTPTimeoutSeconds)*time.Second,
	)
	if err != nil {
		logger.WithError(err).Fatal("gateway.NewClient")
		return
	}

	a := &app{
		logger:  logger,
		cfg:     envConfig,
		service: service.NewService(gw, store),
	}

	ctx := context.Background()
	command := os.Args[1]
	args := os.Args[2:]

	var runErr error
	switch command {
	case "login":
		runErr = a.login(ctx, args)
	case "logout":
		runErr = a.service.Auth.Logout()
	case "whoami":
		runErr = a.whoami()
	case "register":
		runErr = a.register(ctx, args)
	case "accounts":
		runErr = a.accounts(ctx)
	case "account-create":
		runErr = a.accountCreate(ctx, args)
	case "account-delete":
		runErr = a.accountDelete(ctx, args)
	case "balance":
		runErr = a.balance(ctx, args)
	case "statement":
		runErr = a.statement(ctx, args)
	case "cards":
		runErr = a.cards(ctx)
	case "card-create":
		runErr = a.cardCreate(ctx, args)
	case "card-delete":
		runErr = a.cardDelete(ctx, args)
	case "loans":
		runErr = a.loans(ctx)
	case "notices":
		runErr = a.notices(ctx)
	default:
		usage()
		os.Exit(2)
	}

	if runErr != nil {
		if errors.Is(runErr, gateway.ErrSessionExpired) {
			fmt.Fprintln(os.Stderr, "Session expired. Run 'portal login' to sign in again.")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		}
		os.Exit(1)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password")
	_ = fs.Parse(args)

	if *email == "" || *password == "" {
		return errors.New("login requires -email and -password")
	}

	sess, err := a.service.Auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s\n", sess.Profile.Email)
	return nil
}

func (a *app) whoami() error {
	sess, ok := a.service.Auth.CurrentSession()
	if !ok {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("%s <%s>\n", sess.Profile.Name, sess.Profile.Email)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "Full name")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (min 8 characters)")
	confirm := fs.String("confirm", "", "Password confirmation")
	mobile := fs.String("mobile", "", "Mobile number")
	_ = fs.Parse(args)

	reg := model.Registration{
		Name:         *name,
		Email:        *email,
		MobileNumber: *mobile,
		Password:     *password,
	}
	if err := a.service.Register.Register(ctx, reg, *confirm); err != nil {
		return err
	}
	fmt.Println("Registration submitted. You will receive a confirmation email shortly.")
	return nil
}

func (a *app) accounts(ctx context.Context) error {
	accounts, err := a.service.Account.List(ctx)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Println("No accounts.")
		return nil
	}
	for _, acct := range accounts {
		fmt.Printf("%-14s %-10s %s\n", acct.AccountNumber, acct.AccountType, acct.BranchAddress)
	}
	return nil
}

func (a *app) accountCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("account-create", flag.ExitOnError)
	accountType := fs.String("type", "", "Account type (Savings, Checking, ...)")
	branch := fs.String("branch", "", "Branch address")
	_ = fs.Parse(args)

	if *accountType == "" {
		return errors.New("account-create requires -type")
	}
	return a.service.Account.Create(ctx, service.AccountCreate{
		AccountType:   *accountType,
		BranchAddress: *branch,
	})
}

func (a *app) accountDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("account-delete", flag.ExitOnError)
	number := fs.String("number", "", "Account number")
	_ = fs.Parse(args)

	if *number == "" {
		return errors.New("account-delete requires -number")
	}
	return a.service.Account.Delete(ctx, *number)
}

func (a *app) balance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	by := fs.String("by", "account", "Grouping key: account or card")
	all := fs.Bool("all", false, "Expand collapsed groups")
	limit := fs.Int("limit", a.cfg.InlineLimit, "Inline entries per group before collapsing")
	debug := fs.Bool("debug", false, "Dump the derived ledger")
	_ = fs.Parse(args)

	keyFn, err := keyFuncFor(*by)
	if err != nil {
		return err
	}

	logData := logging.NewLogData(a.logger)
	ctx = logging.WithLogData(ctx, logData)

	stopFetch := logData.AddTiming("fetchMs")
	records, err := a.service.Balance.Transactions(ctx)
	stopFetch()
	if err != nil {
		return err
	}
	logData.AddData("recordCount", len(records))

	stopReconcile := logData.AddTiming("reconcileMs")
	groups := ledger.Reconcile(records, keyFn, *limit)
	stopReconcile()
	logData.AddData("groupCount", len(groups))
	logData.Log().Info("Balance.Complete")
	if *debug {
		fmt.Fprint(os.Stderr, spew.Sdump(groups))
	}

	if len(groups) == 0 {
		fmt.Println("No transactions.")
		return nil
	}

	for _, group := range groups {
		fmt.Printf("%s %s\n", *by, group.Key)
		entries := group.Entries
		if *all {
			entries = group.Expand()
		}
		for _, entry := range entries {
			printEntry(entry)
		}
		if group.HasMore && !*all {
			fmt.Printf("  (%d more; rerun with -all)\n", len(group.Expand())-len(group.Entries))
		}
		fmt.Println()
	}
	return nil
}

func printEntry(entry ledger.Entry) {
	date := ""
	if !entry.Record.PostedAt.IsZero() {
		date = entry.Record.PostedAt.Format("2006-01-02")
	}
	fmt.Printf("  %-10s  %-28s %12s %14s\n",
		date,
		entry.Record.Summary,
		statement.FormatSigned(entry.SignedAmount),
		statement.FormatAmount(entry.RunningBalance),
	)
}

func (a *app) statement(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("statement", flag.ExitOnError)
	by := fs.String("by", "account", "Grouping key: account or card")
	key := fs.String("key", "", "Account or card number (defaults to the first group)")
	out := fs.String("out", "", "Output HTML file")
	_ = fs.Parse(args)

	if *out == "" {
		return errors.New("statement requires -out")
	}
	keyFn, err := keyFuncFor(*by)
	if err != nil {
		return err
	}

	records, err := a.service.Balance.Transactions(ctx)
	if err != nil {
		return err
	}

	groups := ledger.Reconcile(records, keyFn, 0)
	var entries []ledger.Entry
	label := *key
	found := false
	for _, group := range groups {
		if *key == "" || group.Key == *key {
			entries = group.Expand()
			label = group.Key
			found = true
			break
		}
	}
	if !found && *key != "" {
		return fmt.Errorf("no transactions for %s %q", *by, *key)
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := statement.Render(f, label, entries); err != nil {
		return err
	}
	fmt.Printf("Statement written to %s\n", *out)
	return nil
}

func (a *app) cards(ctx context.Context) error {
	cards, err := a.service.Card.List(ctx)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		fmt.Println("No cards.")
		return nil
	}
	for _, card := range cards {
		fmt.Printf("%-36s %-22s %-8s %s exp %s\n",
			card.ID, card.CardNumber, card.CardType, card.CardholderName, card.ExpiryDate)
	}
	return nil
}

func (a *app) cardCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("card-create", flag.ExitOnError)
	cardType := fs.String("type", "", "Card type (Credit, Debit)")
	holder := fs.String("holder", "", "Cardholder name")
	_ = fs.Parse(args)

	if *cardType == "" || *holder == "" {
		return errors.New("card-create requires -type and -holder")
	}
	return a.service.Card.Create(ctx, service.CardCreate{
		CardType:       *cardType,
		CardholderName: *holder,
	})
}

func (a *app) cardDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("card-delete", flag.ExitOnError)
	id := fs.String("id", "", "Card ID")
	_ = fs.Parse(args)

	if *id == "" {
		return errors.New("card-delete requires -id")
	}
	return a.service.Card.Delete(ctx, *id)
}

func (a *app) loans(ctx context.Context) error {
	loans, err := a.service.Loan.List(ctx)
	if err != nil {
		return err
	}
	if len(loans) == 0 {
		fmt.Println("No loans.")
		return nil
	}
	for _, loan := range loans {
		fmt.Printf("%-14s %-8s total %s, paid %s, outstanding %s\n",
			loan.LoanNumber, loan.LoanType,
			statement.FormatAmount(loan.TotalLoan),
			statement.FormatAmount(loan.AmountPaid),
			statement.FormatAmount(loan.OutstandingAmount),
		)
	}
	return nil
}

func (a *app) notices(ctx context.Context) error {
	notices, err := a.service.Notice.List(ctx)
	if err != nil {
		return err
	}
	for _, notice := range notices {
		fmt.Printf("%s: %s\n", notice.Title, notice.Body)
	}
	return nil
}

func keyFuncFor(by string) (ledger.KeyFunc, error) {
	switch by {
	case "account":
		return ledger.ByAccount, nil
	case "card":
		return ledger.ByCard, nil
	default:
		return nil, fmt.Errorf("unknown grouping key %q (want account or card)", by)
	}
}
