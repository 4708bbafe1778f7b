package insuranceService

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"HealthAssistant/internal/api/insurance"
	"HealthAssistant/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPolicyHeader = "policy_number,group_number,policy_holder_name,policy_holder_dob,relationship,status,coverage_type,copay_amount,effective_date,expiration_date\n"

func newTestService(t *testing.T, csvFiles map[string]string) IInsuranceService {
	t.Helper()

	dir := t.TempDir()
	for name, rows := range csvFiles {
		err := os.WriteFile(filepath.Join(dir, name), []byte(testPolicyHeader+rows), 0o644)
		require.NoError(t, err)
	}

	t.Setenv("INSURANCE_DATA_PATH", dir)
	return New(log.NewLogger(), nil)
}

func TestVerify_ActivePolicy(t *testing.T) {
	svc := newTestService(t, map[string]string{
		"aetna.csv": "AET123456789,GRP01,Thomas White,1983-04-12,self,active,PPO,30.00,2024-06-01,2099-12-31\n",
	})

	result, err := svc.Verify(context.Background(), insurance.VerifyRequest{
		Provider:         "Aetna",
		PolicyNumber:     "AET123456789",
		PolicyHolderName: "Thomas White",
		PolicyHolderDOB:  "1983-04-12",
	})
	require.NoError(t, err)

	assert.True(t, result.PolicyFound)
	assert.True(t, result.Verified)
	assert.Equal(t, "aetna", result.Provider)
	assert.Empty(t, result.Errors)
	assert.True(t, result.VerifiedFields["policy_holder_name"])
	assert.True(t, result.VerifiedFields["status"])
	assert.Equal(t, "PPO", result.Details["coverage_type"])
}

func TestVerify_PolicyNumberCaseInsensitive(t *testing.T) {
	svc := newTestService(t, map[string]string{
		"aetna.csv": "AET123456789,GRP01,Thomas White,1983-04-12,self,active,PPO,30.00,2024-06-01,2099-12-31\n",
	})

	result, err := svc.Verify(context.Background(), insurance.VerifyRequest{
		Provider:         "aetna",
		PolicyNumber:     "aet123456789",
		PolicyHolderName: "thomas white",
	})
	require.NoError(t, err)

	assert.True(t, result.Verified)
}

func TestVerify_NameMismatch(t *testing.T) {
	svc := newTestService(t, map[string]string{
		"aetna.csv": "AET123456789,GRP01,Thomas White,1983-04-12,self,active,PPO,30.00,2024-06-01,2099-12-31\n",
	})

	result, err := svc.Verify(context.Background(), insurance.VerifyRequest{
		Provider:         "aetna",
		PolicyNumber:     "AET123456789",
		PolicyHolderName: "Wrong Name",
	})
	require.NoError(t, err)

	assert.True(t, result.PolicyFound)
	assert.False(t, result.Verified)
	assert.False(t, result.VerifiedFields["policy_holder_name"])
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "name mismatch")
}

func TestVerify_DOBOnlyCheckedWhenSupplied(t *testing.T) {
	svc := newTestService(t, map[string]string{
		"aetna.csv": "AET123456789,GRP01,Thomas White,1983-04-12,self,active,PPO,30.00,2024-06-01,2099-12-31\n",
	})
	ctx := context.Background()

	result, err := svc.Verify(ctx, insurance.VerifyRequest{
		Provider:         "aetna",
		PolicyNumber:     "AET123456789",
		PolicyHolderName: "Thomas White",
	})
	require.NoError(t, err)
	assert.True(t, result.Verified)

	result, err = svc.Verify(ctx, insurance.VerifyRequest{
		Provider:         "aetna",
		PolicyNumber:     "AET123456789",
		PolicyHolderName: "Thomas White",
		PolicyHolderDOB:  "1990-01-01",
	})
	require.NoError(t, err)
	assert.False(t, result.Verified)
	assert.False(t, result.VerifiedFields["policy_holder_dob"])
}

func TestVerify_InactivePolicy(t *testing.T) {
	svc := newTestService(t, map[string]string{
		"cigna.csv": "CIG000111222,CGN01,Brian Adams,1975-08-09,self,suspended,HMO,15.00,2023-01-01,2099-12-31\n",
	})

	result, err := svc.Verify(context.Background(), insurance.VerifyRequest{
		Provider:         "Cigna",
		PolicyNumber:     "CIG000111222",
		PolicyHolderName: "Brian Adams",
	})
	require.NoError(t, err)

	assert.False(t, result.Verified)
	assert.False(t, result.VerifiedFields["status"])
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "not active")
}

func TestVerify_ExpiredPolicy(t *testing.T) {
	svc := newTestService(t, map[string]string{
		"aetna.csv": "AET777888999,GRP02,Kevin Brooks,1995-02-14,self,active,HMO,20.00,2021-01-01,2023-12-31\n",
	})

	result, err := svc.Verify(context.Background(), insurance.VerifyRequest{
		Provider:         "aetna",
		PolicyNumber:     "AET777888999",
		PolicyHolderName: "Kevin Brooks",
	})
	require.NoError(t, err)

	assert.False(t, result.Verified)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "expired")
}

func TestVerify_PolicyNotFound(t *testing.T) {
	svc := newTestService(t, map[string]string{
		"aetna.csv": "AET123456789,GRP01,Thomas White,1983-04-12,self,active,PPO,30.00,2024-06-01,2099-12-31\n",
	})

	result, err := svc.Verify(context.Background(), insurance.VerifyRequest{
		Provider:         "aetna",
		PolicyNumber:     "NOPE999",
		PolicyHolderName: "Thomas White",
	})
	require.NoError(t, err)

	assert.False(t, result.PolicyFound)
	assert.False(t, result.Verified)
	assert.NotEmpty(t, result.Errors)
}

func TestVerify_UnknownProvider(t *testing.T) {
	svc := newTestService(t, map[string]string{
		"aetna.csv": "AET123456789,GRP01,Thomas White,1983-04-12,self,active,PPO,30.00,2024-06-01,2099-12-31\n",
	})

	_, err := svc.Verify(context.Background(), insurance.VerifyRequest{
		Provider:         "Galactic Mutual",
		PolicyNumber:     "XYZ123",
		PolicyHolderName: "Thomas White",
	})
	assert.ErrorIs(t, err, insurance.ErrProviderNotSupported)
}

func TestVerify_ProviderDataMissing(t *testing.T) {
	// Provider is known but its CSV file does not exist.
	svc := newTestService(t, map[string]string{})

	_, err := svc.Verify(context.Background(), insurance.VerifyRequest{
		Provider:         "humana",
		PolicyNumber:     "HUM123",
		PolicyHolderName: "Patricia Lee",
	})
	assert.ErrorIs(t, err, insurance.ErrProviderDataMissing)
}

func TestVerify_ProviderDetectedFromFreeText(t *testing.T) {
	svc := newTestService(t, map[string]string{
		"blue_cross_blue_shield.csv": "ABC123456789,GRP03,John Doe,1985-05-15,self,active,PPO,25.00,2024-01-01,2099-12-31\n",
	})

	result, err := svc.Verify(context.Background(), insurance.VerifyRequest{
		Provider:         "my insurance is with Blue Cross Blue Shield",
		PolicyNumber:     "ABC123456789",
		PolicyHolderName: "John Doe",
	})
	require.NoError(t, err)

	assert.True(t, result.Verified)
	assert.Equal(t, "blue_cross_blue_shield", result.Provider)
}

func TestListProviders(t *testing.T) {
	svc := newTestService(t, map[string]string{})

	response := svc.ListProviders(context.Background())
	require.NotEmpty(t, response.Providers)

	names := make(map[string]bool)
	for _, provider := range response.Providers {
		names[provider.Name] = true
	}
	assert.True(t, names["aetna"])
	assert.True(t, names["medicare"])
	assert.True(t, names["blue_cross_blue_shield"])
}
