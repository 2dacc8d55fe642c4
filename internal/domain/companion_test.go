package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanionNormalize_LegacySpellingWins(t *testing.T) {
	c := Companion{DepositorDifferent: true, DepositorName: " 홍길동 "}
	c.Normalize()

	assert.True(t, c.PayerDifferent)
	assert.True(t, c.DepositorDifferent)
	assert.Equal(t, "홍길동", c.PayerName)
	assert.Equal(t, "홍길동", c.DepositorName)
}

func TestCompanionNormalize_CurrentSpellingPreferred(t *testing.T) {
	c := Companion{PayerName: "김철수", DepositorName: "이영희", PayerDifferent: true}
	c.Normalize()

	assert.Equal(t, "김철수", c.PayerName)
	assert.Equal(t, "김철수", c.DepositorName)
	assert.True(t, c.DepositorDifferent)
}

func TestCompanionJSON_LegacyPayloadRoundTrip(t *testing.T) {
	legacy := `{"name":"김민수","gender":"male","product":"premium",` +
		`"isDepositorDifferent":true,"depositorName":"김부모"}`

	var c Companion
	require.NoError(t, json.Unmarshal([]byte(legacy), &c))
	c.Normalize()

	b, err := json.Marshal(c)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))

	// both spellings present and equal after healing
	assert.Equal(t, true, out["payerDifferent"])
	assert.Equal(t, true, out["isDepositorDifferent"])
	assert.Equal(t, "김부모", out["payerName"])
	assert.Equal(t, "김부모", out["depositorName"])
}

func TestApplyProductSelection_CoupleAddsPartner(t *testing.T) {
	main := Companion{
		Gender:      GenderFemale,
		Name:        "이수진",
		Phone1:      "010",
		Phone2:      "1234",
		Phone3:      "5678",
		EmailID:     "soo",
		EmailDomain: "naver.com",
		Delivery:    "email",
		Product:     ProductPremium,
	}

	out := ApplyProductSelection([]Companion{main}, 0, ProductCouple)

	require.Len(t, out, 2)
	partner := out[1]
	assert.Equal(t, GenderMale, partner.Gender)
	assert.Equal(t, ProductCouple, partner.Product)
	assert.True(t, partner.SyncedWithPrimary)
	assert.True(t, partner.WantsCompat)
	assert.Equal(t, "unknown", partner.BirthHour)
	assert.Equal(t, "single", partner.MaritalStatus)

	// contact fields follow the primary
	assert.Equal(t, "5678", partner.Phone3)
	assert.Equal(t, "naver.com", partner.EmailDomain)
}

func TestApplyProductSelection_SwitchingAwayRemovesPartner(t *testing.T) {
	main := Companion{Gender: GenderMale, Name: "박준호", Product: ProductPremium}

	paired := ApplyProductSelection([]Companion{main}, 0, ProductCouple)
	require.Len(t, paired, 2)

	back := ApplyProductSelection(paired, 0, ProductYear)
	require.Len(t, back, 1)
	assert.Equal(t, ProductYear, back[0].Product)
}

func TestApplyProductSelection_NonPrimaryOnlySetsProduct(t *testing.T) {
	list := []Companion{
		{Name: "a", Product: ProductPremium},
		{Name: "b", Product: ProductPremium},
	}

	out := ApplyProductSelection(list, 1, ProductCouple)

	require.Len(t, out, 2)
	assert.Equal(t, ProductCouple, out[1].Product)
	// no partner added for non-primary selections
	assert.Equal(t, ProductPremium, out[0].Product)
}

func TestApplyProductSelection_DoesNotMutateInput(t *testing.T) {
	list := []Companion{{Name: "a", Product: ProductPremium}}
	_ = ApplyProductSelection(list, 0, ProductCouple)

	assert.Equal(t, ProductPremium, list[0].Product)
	assert.Len(t, list, 1)
}

func TestApplyProductSelection_IndexOutOfRange(t *testing.T) {
	list := []Companion{{Name: "a"}}
	assert.Equal(t, list, ApplyProductSelection(list, 3, ProductYear))
}

func TestSyncContactWithPrimary_SkipsUnsynced(t *testing.T) {
	list := []Companion{
		{Phone3: "1111", EmailID: "main"},
		{SyncedWithPrimary: true, Phone3: "9999"},
		{SyncedWithPrimary: false, Phone3: "8888"},
	}

	out := SyncContactWithPrimary(list)

	assert.Equal(t, "1111", out[1].Phone3)
	assert.Equal(t, "main", out[1].EmailID)
	assert.Equal(t, "8888", out[2].Phone3)
}
