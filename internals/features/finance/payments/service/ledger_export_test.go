package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLedger(t *testing.T) {
	paidOn := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	method := "bank"
	f, err := BuildLedger([]LedgerRow{
		{RegistrationNo: "STD0001", StudentName: "Kamal Perera", CourseName: "AL Science", Month: "2026-02",
			AmountDue: 10000, AmountPaid: 10000, Status: "Paid", PaidOn: &paidOn, Method: &method},
		{RegistrationNo: "STD0002", StudentName: "Nimal Silva", CourseName: "AL Science", Month: "2026-02",
			AmountDue: 10000, AmountPaid: 2500, RemainingAmount: 7500, Status: "Incomplete"},
	})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(LedgerSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Registration No", rows[0][0])
	assert.Equal(t, "STD0001", rows[1][0])
	assert.Equal(t, "2026-02-03", rows[1][8])
	assert.Equal(t, "bank", rows[1][9])
	assert.Equal(t, "Total", rows[3][3])
	assert.Equal(t, "20000", rows[3][4])
	assert.Equal(t, "12500", rows[3][5])
	assert.Equal(t, "7500", rows[3][6])

	assert.Equal(t, []string{LedgerSheet}, f.GetSheetList())
}
