package service

import (
	"context"
	"testing"

	"lob-summary/internal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const policyCSV = `Nodes,Sub-type / VOC,Gold,Silver & Bronze,New & Iron
"Ordered by Mistake
Customer placed the order by mistake","VOC: ""I ordered this by mistake""
VOC: ""I accidentally ordered the wrong product""","Cancellation – Cancel the order before dispatch","Cancellation – Cancel before dispatch only","Service No – Explain that cancellation is not possible after dispatch"
"Product Damaged","• Product arrived damaged and broken
• The screen is cracked on delivery","Replacement – Send a replacement unit","Refund – Initiate refund after pickup","Service No – Share the damage SOP"
`

const secondCSV = `Nodes,Sub-type / VOC,Gold
Late Delivery,"VOC: ""My order has not arrived yet""",Escalation – Raise a delivery escalation
`

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func ingestFixture(t *testing.T, content string) *models.KnowledgeBase {
	t.Helper()
	kb, _, err := NewIngestor(true, testLogger()).Ingest("policy.csv", []byte(content))
	require.NoError(t, err)
	return kb
}

func loadedService(t *testing.T, opts SummaryOptions) *SummaryService {
	t.Helper()
	s := NewSummaryService(opts, testLogger())
	_, err := s.Load(context.Background(), &BytesSource{FileName: "policy.csv", Content: []byte(policyCSV)})
	require.NoError(t, err)
	return s
}
