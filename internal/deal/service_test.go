package deal_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/core/events"
	"github.com/pradiptamal/crm-management/internal/deal"
	"github.com/pradiptamal/crm-management/internal/paymentterm"
)

type mockDealRepo struct {
	deals    map[int64]*deal.Deal
	statuses map[int64]*deal.DealStatus
	history  []*deal.DealStatusHistory
	notes    []string
	terms    map[int64][]deal.DealPaymentTerm
	nextID   int64

	changeStatusErr error
}

func newMockDealRepo() *mockDealRepo {
	return &mockDealRepo{
		deals:    make(map[int64]*deal.Deal),
		statuses: make(map[int64]*deal.DealStatus),
		terms:    make(map[int64][]deal.DealPaymentTerm),
		nextID:   1,
	}
}

func (m *mockDealRepo) Create(d *deal.Deal, companyIDs, contactIDs []int64) error {
	d.ID = m.nextID
	m.nextID++
	m.deals[d.ID] = d
	return nil
}

func (m *mockDealRepo) GetByID(id int64) (*deal.Deal, error) {
	d, ok := m.deals[id]
	if !ok {
		return nil, internal.ErrDealNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *mockDealRepo) List(tenantID int64, limit, offset int) ([]*deal.Deal, error) {
	var out []*deal.Deal
	for _, d := range m.deals {
		if d.TenantID == tenantID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDealRepo) Update(d *deal.Deal) error {
	m.deals[d.ID] = d
	return nil
}

func (m *mockDealRepo) ChangeStatus(d *deal.Deal, history *deal.DealStatusHistory, note string) error {
	if m.changeStatusErr != nil {
		return m.changeStatusErr
	}
	m.deals[d.ID] = d
	m.history = append(m.history, history)
	m.notes = append(m.notes, note)
	return nil
}

func (m *mockDealRepo) GetStatus(id int64) (*deal.DealStatus, error) {
	s, ok := m.statuses[id]
	if !ok {
		return nil, internal.ErrStatusNotFound
	}
	return s, nil
}

func (m *mockDealRepo) ListStatuses(tenantID int64) ([]*deal.DealStatus, error) {
	var out []*deal.DealStatus
	for _, s := range m.statuses {
		if s.TenantID == tenantID && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockDealRepo) CreateStatus(s *deal.DealStatus) error {
	s.ID = m.nextID
	m.nextID++
	m.statuses[s.ID] = s
	return nil
}

func (m *mockDealRepo) ReplacePaymentTerms(dealID int64, terms []deal.DealPaymentTerm) error {
	m.terms[dealID] = terms
	return nil
}

func (m *mockDealRepo) ListPaymentTerms(dealID int64) ([]*deal.DealPaymentTerm, error) {
	var out []*deal.DealPaymentTerm
	for i := range m.terms[dealID] {
		out = append(out, &m.terms[dealID][i])
	}
	return out, nil
}

func (m *mockDealRepo) ListStatusHistory(dealID int64) ([]*deal.DealStatusHistory, error) {
	var out []*deal.DealStatusHistory
	for _, h := range m.history {
		if h.DealID == dealID {
			out = append(out, h)
		}
	}
	return out, nil
}

var _ = Describe("Deal Service", func() {
	var (
		repo    *mockDealRepo
		service *deal.Service
		ctx     context.Context

		tenantID int64 = 1
		actorID  int64 = 10
	)

	BeforeEach(func() {
		repo = newMockDealRepo()
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		bus := events.NewEventBus(logger)
		service = deal.NewService(repo, bus, logger)
		ctx = context.Background()
	})

	seedDeal := func(statusID int64) *deal.Deal {
		d := &deal.Deal{
			TenantID: tenantID,
			Name:     "Office rollout",
			StatusID: statusID,
			Value:    decimal.NewFromInt(10000),
			Currency: "EUR",
		}
		Expect(repo.Create(d, nil, nil)).To(Succeed())
		return d
	}

	seedStatus := func(name string, requiresReason, isPause bool) *deal.DealStatus {
		s := &deal.DealStatus{
			TenantID:       tenantID,
			Name:           name,
			RequiresReason: requiresReason,
			IsPauseStatus:  isPause,
			IsActive:       true,
		}
		Expect(repo.CreateStatus(s)).To(Succeed())
		return s
	}

	Describe("ChangeStatus", func() {
		It("rejects a reason-requiring status without a reason", func() {
			open := seedStatus("Open", false, false)
			lost := seedStatus("Lost", true, false)
			d := seedDeal(open.ID)

			_, err := service.ChangeStatus(ctx, tenantID, d.ID, deal.ChangeStatusDTO{
				StatusID: lost.ID,
			}, actorID)

			Expect(err).To(MatchError(internal.ErrStatusReason))
			Expect(repo.history).To(BeEmpty())
		})

		It("accepts a reason-requiring status with a reason and records history", func() {
			open := seedStatus("Open", false, false)
			lost := seedStatus("Lost", true, false)
			d := seedDeal(open.ID)

			updated, err := service.ChangeStatus(ctx, tenantID, d.ID, deal.ChangeStatusDTO{
				StatusID: lost.ID,
				Reason:   "competitor undercut on price",
			}, actorID)

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.StatusID).To(Equal(lost.ID))
			Expect(repo.history).To(HaveLen(1))
			Expect(repo.history[0].Reason).To(Equal("competitor undercut on price"))
			Expect(repo.history[0].ToStatusID).To(Equal(lost.ID))
			Expect(*repo.history[0].FromStatusID).To(Equal(open.ID))
			Expect(repo.notes).To(HaveLen(1))
		})

		It("sets the resume date when moving to a pause status", func() {
			open := seedStatus("Open", false, false)
			paused := seedStatus("Paused", true, true)
			d := seedDeal(open.ID)

			resume := time.Now().AddDate(0, 1, 0)
			updated, err := service.ChangeStatus(ctx, tenantID, d.ID, deal.ChangeStatusDTO{
				StatusID:   paused.ID,
				Reason:     "customer budget freeze",
				ResumeDate: &resume,
			}, actorID)

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.StatusResumeDate).NotTo(BeNil())
			Expect(*updated.StatusResumeDate).To(BeTemporally("==", resume))
		})

		It("clears the resume date when moving to a non-pause status", func() {
			open := seedStatus("Open", false, false)
			paused := seedStatus("Paused", true, true)
			d := seedDeal(open.ID)

			resume := time.Now().AddDate(0, 1, 0)
			_, err := service.ChangeStatus(ctx, tenantID, d.ID, deal.ChangeStatusDTO{
				StatusID:   paused.ID,
				Reason:     "waiting for funding",
				ResumeDate: &resume,
			}, actorID)
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.ChangeStatus(ctx, tenantID, d.ID, deal.ChangeStatusDTO{
				StatusID: open.ID,
			}, actorID)

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.StatusResumeDate).To(BeNil())
		})

		It("ignores a resume date on a non-pause status", func() {
			open := seedStatus("Open", false, false)
			won := seedStatus("Won", false, false)
			d := seedDeal(open.ID)

			resume := time.Now().AddDate(0, 1, 0)
			updated, err := service.ChangeStatus(ctx, tenantID, d.ID, deal.ChangeStatusDTO{
				StatusID:   won.ID,
				ResumeDate: &resume,
			}, actorID)

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.StatusResumeDate).To(BeNil())
		})

		It("rejects a status belonging to another tenant", func() {
			open := seedStatus("Open", false, false)
			foreign := &deal.DealStatus{TenantID: 99, Name: "Won", IsActive: true}
			Expect(repo.CreateStatus(foreign)).To(Succeed())
			d := seedDeal(open.ID)

			_, err := service.ChangeStatus(ctx, tenantID, d.ID, deal.ChangeStatusDTO{
				StatusID: foreign.ID,
			}, actorID)

			Expect(err).To(MatchError(internal.ErrStatusNotFound))
		})

		It("leaves the deal untouched when the transactional write fails", func() {
			open := seedStatus("Open", false, false)
			won := seedStatus("Won", false, false)
			d := seedDeal(open.ID)

			repo.changeStatusErr = internal.NewInternalError("db down", nil)
			_, err := service.ChangeStatus(ctx, tenantID, d.ID, deal.ChangeStatusDTO{
				StatusID: won.ID,
			}, actorID)

			Expect(err).To(HaveOccurred())
			stored, _ := repo.GetByID(d.ID)
			Expect(stored.StatusID).To(Equal(open.ID))
			Expect(repo.history).To(BeEmpty())
		})
	})

	Describe("SetPaymentTerms", func() {
		It("calculates percentage installments against the deal value", func() {
			open := seedStatus("Open", false, false)
			d := seedDeal(open.ID)

			thirty := decimal.NewFromInt(30)
			seventy := decimal.NewFromInt(70)
			terms, err := service.SetPaymentTerms(tenantID, d.ID, deal.SetPaymentTermsDTO{
				Terms: []paymentterm.Term{
					{InstallmentNumber: 1, Percentage: &thirty},
					{InstallmentNumber: 2, Percentage: &seventy},
				},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(terms).To(HaveLen(2))
			Expect(terms[0].CalculatedAmount.String()).To(Equal("3000"))
			Expect(terms[1].CalculatedAmount.String()).To(Equal("7000"))
		})

		It("rejects duplicate installment numbers", func() {
			open := seedStatus("Open", false, false)
			d := seedDeal(open.ID)

			fifty := decimal.NewFromInt(50)
			_, err := service.SetPaymentTerms(tenantID, d.ID, deal.SetPaymentTermsDTO{
				Terms: []paymentterm.Term{
					{InstallmentNumber: 1, Percentage: &fifty},
					{InstallmentNumber: 1, Percentage: &fifty},
				},
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("CreateDeal", func() {
		It("rejects a negative value", func() {
			open := seedStatus("Open", false, false)
			_, err := service.CreateDeal(tenantID, deal.CreateDealDTO{
				Name:     "Bad deal",
				StatusID: open.ID,
				Value:    decimal.NewFromInt(-1),
			}, actorID)

			Expect(err).To(HaveOccurred())
		})
	})
})
