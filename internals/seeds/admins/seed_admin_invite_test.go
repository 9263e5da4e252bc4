package admins_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminModel "cftl_backend/internals/features/users/admins/model"
	"cftl_backend/internals/seeds/admins"
	"cftl_backend/internals/testutil"
)

func TestSeedAdminInvite(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, admins.SeedAdminInvite(db, "  Boss@CFTL.lk "))
	require.NoError(t, admins.SeedAdminInvite(db, "boss@cftl.lk"))

	var invites []adminModel.AdminInvite
	require.NoError(t, db.Find(&invites).Error)
	require.Len(t, invites, 1)
	assert.Equal(t, "boss@cftl.lk", invites[0].AdminInviteEmail)
}

func TestSeedAdminInviteSkipsExistingAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedStaff(t, db)

	require.NoError(t, admins.SeedAdminInvite(db, testutil.AdminEmail))
	require.NoError(t, admins.SeedAdminInvite(db, ""))

	var n int64
	require.NoError(t, db.Model(&adminModel.AdminInvite{}).Count(&n).Error)
	assert.Zero(t, n)
}
