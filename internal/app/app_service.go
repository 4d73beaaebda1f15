package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"erp-dashboard/internal/core"
	"erp-dashboard/internal/metrics"
	"erp-dashboard/internal/storage"

	"github.com/sirupsen/logrus"
)

// Options wires an ApplicationService. Store and Credentials are required.
type Options struct {
	Store       storage.Store
	Credentials core.CredentialChecker
	Finance     core.FinanceSource
	Logger      logrus.FieldLogger
	Metrics     *metrics.Metrics
	Clock       func() time.Time
	SessionTTL  time.Duration
}

type appService struct {
	store       storage.Store
	credentials core.CredentialChecker
	finance     core.FinanceSource
	logger      logrus.FieldLogger
	metrics     *metrics.Metrics
	clock       func() time.Time
	sessionTTL  time.Duration

	employees   *recordService[core.Employee, core.EmployeeForm]
	jobOpenings *recordService[core.JobOpening, core.JobOpeningForm]
	trainings   *recordService[core.TrainingProgram, core.TrainingProgramForm]
	ledger      *recordService[core.AccountingEntry, core.AccountingEntryForm]
	payables    *recordService[core.Invoice, core.InvoiceForm]
	receivables *recordService[core.Invoice, core.InvoiceForm]
	payroll     *recordService[core.PayrollEmployee, core.PayrollEmployeeForm]

	ordered []CollectionService
	byName  map[string]CollectionService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(opts Options) ApplicationService {
	if opts.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		opts.Logger = l
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = time.Hour
	}

	s := &appService{
		store:       opts.Store,
		credentials: opts.Credentials,
		finance:     opts.Finance,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		clock:       opts.Clock,
		sessionTTL:  opts.SessionTTL,

		employees:   newRecordService(core.EmployeeSchema(), opts.Store, opts),
		jobOpenings: newRecordService(core.JobOpeningSchema(), opts.Store, opts),
		trainings:   newRecordService(core.TrainingProgramSchema(), opts.Store, opts),
		ledger:      newRecordService(core.AccountingEntrySchema(), opts.Store, opts),
		payables:    newRecordService(core.PayablesSchema(), opts.Store, opts),
		receivables: newRecordService(core.ReceivablesSchema(), opts.Store, opts),
		payroll:     newRecordService(core.PayrollSchema(), opts.Store, opts),
	}

	// Same order as the sidebar tabs.
	s.ordered = []CollectionService{
		s.ledger, s.payables, s.receivables,
		s.employees, s.jobOpenings, s.trainings, s.payroll,
	}
	s.byName = make(map[string]CollectionService, len(s.ordered))
	for _, c := range s.ordered {
		s.byName[c.Info().Name] = c
	}
	return s
}

func (s *appService) Collections() []CollectionInfo {
	out := make([]CollectionInfo, len(s.ordered))
	for i, c := range s.ordered {
		out[i] = c.Info()
	}
	return out
}

func (s *appService) Collection(name string) (CollectionService, error) {
	c, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownCollection)
	}
	return c, nil
}

func (s *appService) FinanceData(ctx context.Context) (json.RawMessage, error) {
	if s.finance == nil {
		return nil, fmt.Errorf("finance data source not configured")
	}
	raw, err := s.finance.Load(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load finance data")
		return nil, err
	}
	return raw, nil
}

func (s *appService) Summary(ctx context.Context) (*core.Summary, error) {
	var (
		in  core.SummaryInput
		err error
	)
	if in.Employees, err = s.employees.coll.Load(ctx); err != nil {
		return nil, err
	}
	if in.JobOpenings, err = s.jobOpenings.coll.Load(ctx); err != nil {
		return nil, err
	}
	if in.Trainings, err = s.trainings.coll.Load(ctx); err != nil {
		return nil, err
	}
	if in.Ledger, err = s.ledger.coll.Load(ctx); err != nil {
		return nil, err
	}
	if in.Payables, err = s.payables.coll.Load(ctx); err != nil {
		return nil, err
	}
	if in.Receivables, err = s.receivables.coll.Load(ctx); err != nil {
		return nil, err
	}
	if in.Payroll, err = s.payroll.coll.Load(ctx); err != nil {
		return nil, err
	}
	sum := core.Summarize(in, s.clock())
	return &sum, nil
}

func (s *appService) Navigation() []core.Module {
	return core.Modules()
}

func (s *appService) ResetAll(ctx context.Context) ([]ResetResult, error) {
	out := make([]ResetResult, 0, len(s.ordered))
	for _, c := range s.ordered {
		res, err := c.Reset(ctx)
		if err != nil {
			return out, fmt.Errorf("reset %s: %w", c.Info().Name, err)
		}
		out = append(out, *res)
	}
	return out, nil
}
