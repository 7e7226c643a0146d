package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/roamfare/roamfare/internal/domain/plan"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/testutil"
	"github.com/roamfare/roamfare/internal/types"
)

const (
	planUUID1 = "11111111-1111-1111-1111-111111111111"
	planUUID2 = "22222222-2222-2222-2222-222222222222"
)

type BulkImportServiceSuite struct {
	testutil.BaseServiceTestSuite
	service BulkImportService
}

func TestBulkImportService(t *testing.T) {
	suite.Run(t, new(BulkImportServiceSuite))
}

func (s *BulkImportServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewBulkImportService(
		s.GetDB(),
		stores.OverrideRepo,
		stores.PlanRepo,
		NewCSVProcessor(s.GetLogger()),
		s.GetLogger(),
	)

	s.seedPlan(planUUID1, "10")
	s.seedPlan(planUUID2, "20")
}

func (s *BulkImportServiceSuite) seedPlan(id, wholesale string) {
	s.NoError(s.GetStores().PlanRepo.Create(s.GetContext(), &plan.Plan{
		ID:             id,
		SupplierPlanID: "sup-" + id[:8],
		Name:           "Plan " + id[:8],
		CountryCode:    "JP",
		WholesalePrice: decimal.RequireFromString(wholesale),
		Currency:       "usd",
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *BulkImportServiceSuite) overrideStore() *testutil.InMemoryOverrideStore {
	return s.GetStores().OverrideRepo.(*testutil.InMemoryOverrideStore)
}

func (s *BulkImportServiceSuite) TestImportHappyPath() {
	csv := "plan_id,retail_price\n" +
		planUUID1 + ",15\n" +
		planUUID2 + ",25\n"

	result, err := s.service.ImportOverrides(s.GetContext(), "agent-1", []byte(csv), false)
	s.NoError(err)
	s.Equal(2, result.TotalRows)
	s.Equal(2, result.Imported)
	s.Equal(0, result.Skipped)
	s.Equal(0, result.ErrorCount)
	s.NotEmpty(result.ImportID)
	s.Equal(2, s.overrideStore().CountByAgent("agent-1"))
}

func (s *BulkImportServiceSuite) TestSentinelRowsSkippedNotErrored() {
	csv := "plan_id,retail_price\n" +
		planUUID1 + ",15\n" +
		"#N/A,#VALUE!\n" +
		planUUID2 + ",#ref!\n"

	result, err := s.service.ImportOverrides(s.GetContext(), "agent-1", []byte(csv), false)
	s.NoError(err)
	s.Equal(3, result.TotalRows)
	s.Equal(1, result.Imported)
	s.Equal(2, result.Skipped)
	s.Equal(0, result.ErrorCount)
}

func (s *BulkImportServiceSuite) TestEmptyRowsSkipped() {
	csv := "plan_id,retail_price\n" +
		",\n" +
		planUUID1 + ",15\n"

	result, err := s.service.ImportOverrides(s.GetContext(), "agent-1", []byte(csv), false)
	s.NoError(err)
	s.Equal(1, result.Imported)
	s.Equal(1, result.Skipped)
}

func (s *BulkImportServiceSuite) TestDuplicatesLastWins() {
	csv := "plan_id,retail_price\n" +
		planUUID1 + ",15\n" +
		planUUID1 + ",16\n"

	result, err := s.service.ImportOverrides(s.GetContext(), "agent-1", []byte(csv), false)
	s.NoError(err)
	s.Equal(1, result.Imported)
	s.Equal(1, result.Duplicates)

	ovr, err := s.overrideStore().Get(s.GetContext(), "agent-1", planUUID1)
	s.NoError(err)
	s.True(ovr.RetailPrice.Equal(decimal.RequireFromString("16")), "got %s", ovr.RetailPrice)
}

func (s *BulkImportServiceSuite) TestUnknownPlanCollectedAsRowError() {
	csv := "plan_id,retail_price\n" +
		"99999999-9999-9999-9999-999999999999,15\n" +
		planUUID1 + ",15\n"

	result, err := s.service.ImportOverrides(s.GetContext(), "agent-1", []byte(csv), false)
	s.NoError(err)
	s.Equal(1, result.Imported)
	s.Equal(1, result.ErrorCount)
	s.Len(result.Errors, 1)
	s.Equal(2, result.Errors[0].Line)
}

func (s *BulkImportServiceSuite) TestMarginViolationCollectedAsRowError() {
	csv := "plan_id,retail_price\n" +
		planUUID1 + ",10.49\n"

	result, err := s.service.ImportOverrides(s.GetContext(), "agent-1", []byte(csv), false)
	s.NoError(err)
	s.Equal(0, result.Imported)
	s.Equal(1, result.ErrorCount)
}

func (s *BulkImportServiceSuite) TestErrorSamplesCapped() {
	csv := "plan_id,retail_price\n"
	for i := 0; i < 10; i++ {
		csv += "not-a-plan,abc\n"
	}

	result, err := s.service.ImportOverrides(s.GetContext(), "agent-1", []byte(csv), false)
	s.NoError(err)
	s.Equal(10, result.ErrorCount)
	s.Len(result.Errors, 5)
}

func (s *BulkImportServiceSuite) TestMessyCellsParsed() {
	// BOM, uppercase UUID wrapped in text, currency symbol and thousands separator
	csv := "\xEF\xBB\xBFplan_id,retail_price\n" +
		"plan " + "11111111-1111-1111-1111-111111111111" + " (JP),\"$1,234.50\"\n"

	result, err := s.service.ImportOverrides(s.GetContext(), "agent-1", []byte(csv), false)
	s.NoError(err)
	s.Equal(1, result.Imported)
	s.Equal(0, result.ErrorCount)

	ovr, err := s.overrideStore().Get(s.GetContext(), "agent-1", planUUID1)
	s.NoError(err)
	s.True(ovr.RetailPrice.Equal(decimal.RequireFromString("1234.50")), "got %s", ovr.RetailPrice)
}

func (s *BulkImportServiceSuite) TestNonUUIDPlanIDsImported() {
	s.seedPlan("plan-esim-jp-10gb", "10")

	csv := "plan_id,retail_price\n" +
		"plan-esim-jp-10gb,15\n" +
		"  #plan-esim-jp-10gb  ,16\n"

	result, err := s.service.ImportOverrides(s.GetContext(), "agent-1", []byte(csv), false)
	s.NoError(err)
	s.Equal(0, result.ErrorCount)
	s.Equal(1, result.Imported)
	s.Equal(1, result.Duplicates)

	ovr, err := s.overrideStore().Get(s.GetContext(), "agent-1", "plan-esim-jp-10gb")
	s.NoError(err)
	s.True(ovr.RetailPrice.Equal(decimal.RequireFromString("16")), "got %s", ovr.RetailPrice)
}

func (s *BulkImportServiceSuite) TestImportReplacesExistingOverrides() {
	csv1 := "plan_id,retail_price\n" + planUUID1 + ",15\n" + planUUID2 + ",25\n"
	_, err := s.service.ImportOverrides(s.GetContext(), "agent-1", []byte(csv1), false)
	s.NoError(err)
	s.Equal(2, s.overrideStore().CountByAgent("agent-1"))

	csv2 := "plan_id,retail_price\n" + planUUID1 + ",16\n"
	_, err = s.service.ImportOverrides(s.GetContext(), "agent-1", []byte(csv2), false)
	s.NoError(err)
	s.Equal(1, s.overrideStore().CountByAgent("agent-1"))
}

func (s *BulkImportServiceSuite) TestDryRunWritesNothing() {
	csv := "plan_id,retail_price\n" + planUUID1 + ",15\n"

	result, err := s.service.ImportOverrides(s.GetContext(), "agent-1", []byte(csv), true)
	s.NoError(err)
	s.True(result.DryRun)
	s.Equal(1, result.Imported)
	s.Equal(0, s.overrideStore().CountByAgent("agent-1"))
}

func (s *BulkImportServiceSuite) TestEmptyFileRejected() {
	_, err := s.service.ImportOverrides(s.GetContext(), "agent-1", nil, false)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
