package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"listingbot/models"
)

func TestAICredits_DecemberRollsTheYear(t *testing.T) {
	f := newTestServer(t)
	f.store.On("GetAICredits", mock.Anything).Return(&models.AICredits{
		MonthlyLimit:  100,
		RemainingFree: 7,
		RemainingPaid: 3,
		LastReset:     "2024-12-15 10:00:00",
	}, nil)

	w := f.request(t, http.MethodGet, "/bot/ai-credits?api_key="+testAPIKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 100, body["monthly_limit"])
	assert.EqualValues(t, 7, body["remaining_free"])
	assert.EqualValues(t, 3, body["remaining_paid"])
	assert.EqualValues(t, 10, body["total_remaining"])
	assert.Equal(t, "2024-12-15 10:00:00", body["last_reset"])
	assert.Equal(t, "2025-01-01T00:00:00+00:00", body["next_reset"])
}

func TestAICredits_MidYearReset(t *testing.T) {
	f := newTestServer(t)
	f.store.On("GetAICredits", mock.Anything).Return(&models.AICredits{
		MonthlyLimit:  2000,
		RemainingFree: 1500,
		RemainingPaid: 0,
		LastReset:     "2025-03-01 00:00:00",
	}, nil)

	w := f.request(t, http.MethodGet, "/bot/ai-credits?api_key="+testAPIKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "2025-04-01T00:00:00+00:00", body["next_reset"])
}

func TestAICredits_EmptyTableReturnsZeros(t *testing.T) {
	f := newTestServer(t)
	f.store.On("GetAICredits", mock.Anything).Return(nil, nil)

	w := f.request(t, http.MethodGet, "/bot/ai-credits?api_key="+testAPIKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 0, body["monthly_limit"])
	assert.EqualValues(t, 0, body["remaining_free"])
	assert.EqualValues(t, 0, body["remaining_paid"])
	assert.Nil(t, body["last_reset"])
	assert.Nil(t, body["next_reset"])
}

func TestListings_TotalIsTheSum(t *testing.T) {
	f := newTestServer(t)
	f.store.On("CountListings", mock.Anything).Return(&models.ListingCounts{
		Accounts: 3,
		Profiles: 2,
		Alts:     0,
	}, nil)

	w := f.request(t, http.MethodGet, "/bot/listings?api_key="+testAPIKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 3, body["accounts"])
	assert.EqualValues(t, 2, body["profiles"])
	assert.EqualValues(t, 0, body["alts"])
	assert.EqualValues(t, 5, body["total"])
}

func TestOwner_CachedUser(t *testing.T) {
	f := newTestServer(t)
	f.discord.On("OwnerID").Return("175928847299117063")
	f.discord.On("User", "175928847299117063").Return(&discordgo.User{
		ID:            "175928847299117063",
		Username:      "nelly",
		GlobalName:    "Nelly",
		Discriminator: "0",
		Avatar:        "8342729096ea3675442027381ff50dfe",
	})

	w := f.request(t, http.MethodGet, "/bot/owner?api_key="+testAPIKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "175928847299117063", body["id"])
	assert.Equal(t, "nelly", body["name"])
	assert.Equal(t, "Nelly", body["display_name"])
	assert.Equal(t, "0", body["discriminator"])
	assert.NotNil(t, body["avatar_url"])
	assert.NotNil(t, body["created_at"])
	f.discord.AssertNotCalled(t, "FetchUser")
}

func TestOwner_FetchFallback(t *testing.T) {
	f := newTestServer(t)
	f.discord.On("OwnerID").Return("42")
	f.discord.On("User", "42").Return(nil)
	f.discord.On("FetchUser", mock.Anything, "42").Return(&discordgo.User{
		ID:       "42",
		Username: "owner",
	}, nil)

	w := f.request(t, http.MethodGet, "/bot/owner?api_key="+testAPIKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "owner", body["name"])
	assert.Equal(t, "0", body["discriminator"])
	assert.Nil(t, body["avatar_url"])
}

func TestOwner_PlaceholderWhenFetchFails(t *testing.T) {
	f := newTestServer(t)
	f.discord.On("OwnerID").Return("42")
	f.discord.On("User", "42").Return(nil)
	f.discord.On("FetchUser", mock.Anything, "42").Return(nil, errors.New("upstream down"))

	w := f.request(t, http.MethodGet, "/bot/owner?api_key="+testAPIKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "42", body["id"])
	assert.Equal(t, "Unknown", body["name"])
	assert.Equal(t, "0000", body["discriminator"])
	assert.Nil(t, body["avatar_url"])
	assert.Nil(t, body["created_at"])
}

func TestTickets_EnrichedWithCachedNames(t *testing.T) {
	f := newTestServer(t)
	f.store.On("ListTickets", mock.Anything).Return([]*models.Ticket{
		{OpenedBy: 42, ChannelID: 100, InitialMessageID: 200, RoleID: 300},
		{OpenedBy: 43, ChannelID: 101, InitialMessageID: 201, RoleID: 301},
	}, nil)
	f.discord.On("User", "42").Return(&discordgo.User{ID: "42", Username: "alice"})
	f.discord.On("User", "43").Return(nil)
	f.discord.On("Channel", "100").Return(&discordgo.Channel{ID: "100", Name: "ticket-42"})
	f.discord.On("Channel", "101").Return(nil)

	w := f.request(t, http.MethodGet, "/bot/tickets?api_key="+testAPIKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 2, body["total"])

	tickets := body["tickets"].([]any)
	first := tickets[0].(map[string]any)
	assert.Equal(t, "alice", first["username"])
	assert.Equal(t, "ticket-42", first["channel_name"])

	second := tickets[1].(map[string]any)
	assert.Equal(t, "Unknown", second["username"])
	assert.Equal(t, "Unknown", second["channel_name"])
}

func TestAddAICredits_RequiresPositiveNumber(t *testing.T) {
	f := newTestServer(t)

	w := f.request(t, http.MethodGet, "/ai/credits/add?api_key="+testAPIKey, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.request(t, http.MethodGet, "/ai/credits/add?credits=abc&api_key="+testAPIKey, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.request(t, http.MethodGet, "/ai/credits/add?credits=-5&api_key="+testAPIKey, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddAICredits_TopsUpExistingPool(t *testing.T) {
	f := newTestServer(t)
	f.store.On("GetAICredits", mock.Anything).Return(&models.AICredits{
		MonthlyLimit:  2000,
		RemainingFree: 100,
		RemainingPaid: 50,
	}, nil).Once()
	f.store.On("AddPaidCredits", mock.Anything, int64(25)).Return(nil)
	f.store.On("GetAICredits", mock.Anything).Return(&models.AICredits{
		MonthlyLimit:  2000,
		RemainingFree: 100,
		RemainingPaid: 75,
	}, nil).Once()

	w := f.request(t, http.MethodGet, "/ai/credits/add?credits=25&api_key="+testAPIKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	previous := body["previous_credits"].(map[string]any)
	assert.EqualValues(t, 100, previous["free"])
	assert.EqualValues(t, 50, previous["paid"])
	assert.EqualValues(t, 150, previous["total"])

	updated := body["updated_credits"].(map[string]any)
	assert.EqualValues(t, 75, updated["paid"])
	assert.EqualValues(t, 175, updated["total"])
	f.store.AssertExpectations(t)
}

func TestAddAICredits_CreatesPoolWhenMissing(t *testing.T) {
	f := newTestServer(t)
	f.store.On("GetAICredits", mock.Anything).Return(nil, nil).Once()
	f.store.On("InsertAIConfig", mock.Anything, int64(2000), int64(2000), int64(10)).Return(nil)
	f.store.On("GetAICredits", mock.Anything).Return(&models.AICredits{
		MonthlyLimit:  2000,
		RemainingFree: 2000,
		RemainingPaid: 10,
	}, nil).Once()

	w := f.request(t, http.MethodGet, "/ai/credits/add?credits=10&api_key="+testAPIKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	previous := body["previous_credits"].(map[string]any)
	assert.EqualValues(t, 150, previous["free"])
	assert.EqualValues(t, 0, previous["paid"])
	assert.EqualValues(t, 150, previous["total"])

	updated := body["updated_credits"].(map[string]any)
	assert.EqualValues(t, 10, updated["paid"])
	f.store.AssertExpectations(t)
}

func TestPayment_ActiveSubscription(t *testing.T) {
	f := newTestServer(t)
	f.store.On("GetHosting", mock.Anything).Return(&models.Hosting{
		PaidUntil:         "2099-01-01 00:00:00",
		PaidBy:            42,
		LastPayment:       "2025-01-01 00:00:00",
		LastPaymentAmount: 30,
		LastPaymentMethod: "paypal",
	}, nil)

	w := f.request(t, http.MethodGet, "/bot/payment?api_key="+testAPIKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["is_paid"])
	assert.Equal(t, "2099-01-01 00:00:00", body["expires_at"])
	assert.Greater(t, body["days_remaining"], float64(0))
	assert.EqualValues(t, 42, body["paid_by"])
	assert.Equal(t, "2025-01-01 00:00:00", body["last_payment"])
	assert.EqualValues(t, 30, body["last_payment_amount"])
	assert.Equal(t, "paypal", body["last_payment_method"])
}

func TestPayment_NoSubscriptionRecord(t *testing.T) {
	f := newTestServer(t)
	f.store.On("GetHosting", mock.Anything).Return(nil, nil)

	w := f.request(t, http.MethodGet, "/bot/payment?api_key="+testAPIKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["is_paid"])
	assert.Nil(t, body["expires_at"])
	assert.EqualValues(t, 0, body["days_remaining"])
	assert.Nil(t, body["paid_by"])
}

func TestPayment_LapsedSubscription(t *testing.T) {
	f := newTestServer(t)
	f.store.On("GetHosting", mock.Anything).Return(&models.Hosting{
		PaidUntil: "2020-01-01 00:00:00",
	}, nil)

	w := f.request(t, http.MethodGet, "/bot/payment?api_key="+testAPIKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["is_paid"])
	assert.Equal(t, "2020-01-01 00:00:00", body["expires_at"])
	assert.EqualValues(t, 0, body["days_remaining"])
}

func TestExtendHosting_LapsedSubscriptionAnchorsAtNow(t *testing.T) {
	f := newTestServer(t)
	f.store.On("GetHosting", mock.Anything).Return(&models.Hosting{
		PaidUntil: "2020-01-01 00:00:00",
	}, nil)
	f.store.On("ExtendHosting", mock.Anything, mock.Anything, int64(0), float64(30), "API").Return(nil)

	w := f.request(t, http.MethodGet, "/bot/extend?days=30&api_key="+testAPIKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["was_expired"])
	assert.EqualValues(t, 30, body["days_added"])
	assert.Contains(t, body["message"], "expired subscription")
	f.store.AssertExpectations(t)
}

func TestExtendHosting_ActiveSubscriptionExtendsExpiry(t *testing.T) {
	f := newTestServer(t)
	f.store.On("GetHosting", mock.Anything).Return(&models.Hosting{
		PaidUntil: "2099-01-01 00:00:00",
	}, nil)
	f.store.On("ExtendHosting", mock.Anything, "2099-01-08T00:00:00+00:00", int64(7), float64(3.5), "paypal").Return(nil)

	w := f.request(t, http.MethodGet,
		"/bot/extend?days=7&user_id=7&amount=3.5&payment_method=paypal&api_key="+testAPIKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["was_expired"])
	assert.Equal(t, "2099-01-01T00:00:00+00:00", body["previous_expiration"])
	assert.Equal(t, "2099-01-08T00:00:00+00:00", body["new_expiration"])
	f.store.AssertExpectations(t)
}

func TestExtendHosting_RequiresDays(t *testing.T) {
	f := newTestServer(t)

	w := f.request(t, http.MethodGet, "/bot/extend?api_key="+testAPIKey, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.request(t, http.MethodGet, "/bot/extend?days=0&api_key="+testAPIKey, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
