package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"geomed/internal/prediction/models"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *Memory
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
}

func newTestRecord(timestamp time.Time) models.Record {
	return models.Record{
		ID:         uuid.NewString(),
		Name:       "Dr. Jane Doe",
		Email:      "jane.doe@ed.ac.uk",
		Hospital:   "Royal Infirmary of Edinburgh",
		Topic:      "cardiac imaging",
		Country:    "Scotland",
		Confidence: 85,
		Sources:    []string{"AI Analysis", "Hospital Name Analysis"},
		Reasoning:  "University of Edinburgh email domain.",
		IsDoctor:   true,
		Timestamp:  timestamp,
	}
}

func (s *MemoryStoreSuite) TestSaveAndFindByID() {
	ctx := context.Background()
	record := newTestRecord(time.Now().UTC())

	s.Require().NoError(s.store.Save(ctx, record))

	found, err := s.store.FindByID(ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(record, found)
}

func (s *MemoryStoreSuite) TestFindByIDMissing() {
	_, err := s.store.FindByID(context.Background(), uuid.NewString())
	s.ErrorIs(err, ErrNotFound)
}

func (s *MemoryStoreSuite) TestListRecentNewestFirst() {
	ctx := context.Background()
	base := time.Now().UTC()

	oldest := newTestRecord(base.Add(-2 * time.Hour))
	middle := newTestRecord(base.Add(-1 * time.Hour))
	newest := newTestRecord(base)
	for _, record := range []models.Record{middle, oldest, newest} {
		s.Require().NoError(s.store.Save(ctx, record))
	}

	records, err := s.store.ListRecent(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal(newest.ID, records[0].ID)
	s.Equal(middle.ID, records[1].ID)
	s.Equal(oldest.ID, records[2].ID)
}

func (s *MemoryStoreSuite) TestListRecentLimit() {
	ctx := context.Background()
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.store.Save(ctx, newTestRecord(base.Add(time.Duration(i)*time.Minute))))
	}

	records, err := s.store.ListRecent(ctx, 2)
	s.Require().NoError(err)
	s.Len(records, 2)
}
