package fee

import (
	"errors"
	"time"

	"github.com/trezcool/shule/core"
)

var (
	ErrNotFound = errors.New("fee record not found")

	NowFunc = time.Now // mockable
)

type Service struct {
	store core.Store
}

func NewService(store core.Store) *Service {
	return &Service{store: store}
}

func (svc *Service) collection() []Fee {
	var fees []Fee
	svc.store.Read(core.KeyFees, &fees)
	return fees
}

func (svc *Service) QueryAll() ([]Fee, error) {
	return svc.collection(), nil
}

func (svc *Service) GetByStudent(studentID string) (Fee, error) {
	for _, f := range svc.collection() {
		if f.StudentID == studentID {
			return f, nil
		}
	}
	return Fee{}, ErrNotFound
}

// MarkPaid upserts the fee record for a student: an existing record is
// updated in place, otherwise a new one is appended.
func (svc *Service) MarkPaid(p Payment) (Fee, error) {
	if err := p.Validate(); err != nil {
		return Fee{}, err
	}

	datePaid := NowFunc().Format("01/02/2006")

	fees := svc.collection()
	for i, f := range fees {
		if f.StudentID != p.StudentID {
			continue
		}
		f.Amount = p.Amount
		f.Status = StatusPaid
		f.DatePaid = datePaid
		fees[i] = f
		if !svc.store.Write(core.KeyFees, fees) {
			return Fee{}, core.ErrStorageFailure
		}
		return f, nil
	}

	f := Fee{
		ID:          core.NextID("", len(fees), 3),
		StudentID:   p.StudentID,
		StudentName: p.StudentName,
		Class:       p.Class,
		Amount:      p.Amount,
		Status:      StatusPaid,
		DatePaid:    datePaid,
	}
	fees = append(fees, f)
	if !svc.store.Write(core.KeyFees, fees) {
		return Fee{}, core.ErrStorageFailure
	}
	return f, nil
}

// Delete removes the fee record belonging to a student, if any.
func (svc *Service) Delete(studentID string) error {
	fees := svc.collection()
	kept := fees[:0]
	for _, f := range fees {
		if f.StudentID != studentID {
			kept = append(kept, f)
		}
	}
	if !svc.store.Write(core.KeyFees, kept) {
		return core.ErrStorageFailure
	}
	return nil
}
