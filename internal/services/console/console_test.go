package console

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-admin-console/internal/apiclient"
	"github.com/magabrotheeeer/subscription-admin-console/internal/audit"
	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
	"github.com/magabrotheeeer/subscription-admin-console/internal/session"
)

var testAdmin = models.Admin{ID: 1, Email: "root@example.com", Role: "admin"}

func testCtx() context.Context {
	return session.WithID(context.Background(), "browser-1")
}

func newLoggedIn(t *testing.T) (*Service, *APIMock, *PublisherMock) {
	t.Helper()
	api := new(APIMock)
	pub := new(PublisherMock)
	sessions := newManager()
	require.NoError(t, sessions.Set(testCtx(), "tok", testAdmin))
	return NewService(api, sessions, pub, newNoopLogger()), api, pub
}

func TestLogin_StoresSession(t *testing.T) {
	api := new(APIMock)
	sessions := newManager()
	svc := NewService(api, sessions, audit.NopPublisher{}, newNoopLogger())

	api.On("Login", mock.Anything, "root@example.com", "secret").
		Return(&models.LoginResponse{AccessToken: "tok", Admin: testAdmin}, nil).Once()

	admin, err := svc.Login(testCtx(), "  root@example.com ", "secret")
	require.NoError(t, err)
	assert.Equal(t, testAdmin, *admin)

	tok, err := sessions.Token(testCtx())
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
	api.AssertExpectations(t)
}

func TestLogin_FailureKeepsPreviousSession(t *testing.T) {
	svc, api, _ := newLoggedIn(t)
	apiErr := &apiclient.APIError{StatusCode: 401, Message: "bad credentials", Path: "auth/login"}
	api.On("Login", mock.Anything, "root@example.com", "wrong").Return(nil, apiErr).Once()

	_, err := svc.Login(testCtx(), "root@example.com", "wrong")
	require.ErrorIs(t, err, apiclient.ErrUnauthorized)

	admin, err := svc.CurrentAdmin(testCtx())
	require.NoError(t, err)
	assert.Equal(t, testAdmin.ID, admin.ID)
}

func TestLogout_ClearsSession(t *testing.T) {
	svc, _, _ := newLoggedIn(t)

	require.NoError(t, svc.Logout(testCtx()))

	_, err := svc.CurrentAdmin(testCtx())
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
		apiErr   error
		wantErr  error
		callsAPI bool
	}{
		{name: "empty password", password: "", wantErr: ErrPasswordRequired},
		{name: "wrong password", password: "bad", valid: false, wantErr: ErrInvalidPassword, callsAPI: true},
		{name: "correct password", password: "good", valid: true, callsAPI: true},
		{name: "backend failure", password: "good", apiErr: apiclient.ErrTransport, wantErr: apiclient.ErrTransport, callsAPI: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, api, _ := newLoggedIn(t)
			if tt.callsAPI {
				api.On("VerifyAdminPassword", mock.Anything, tt.password).Return(tt.valid, tt.apiErr).Once()
			}

			err := svc.Confirm(testCtx(), tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			if !tt.callsAPI {
				api.AssertNotCalled(t, "VerifyAdminPassword", mock.Anything, mock.Anything)
			}
			api.AssertExpectations(t)
		})
	}
}

func TestBlockUser_WrongPasswordSkipsAction(t *testing.T) {
	svc, api, pub := newLoggedIn(t)
	api.On("VerifyAdminPassword", mock.Anything, "bad").Return(false, nil).Once()

	ok, err := svc.BlockUser(testCtx(), 42, models.BlockUserRequest{Reason: "spam", Password: "bad"})
	require.ErrorIs(t, err, ErrInvalidPassword)
	assert.False(t, ok)

	api.AssertNotCalled(t, "BlockUser", mock.Anything, mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestBlockUser_PublishesAudit(t *testing.T) {
	svc, api, pub := newLoggedIn(t)
	req := models.BlockUserRequest{Reason: "spam", Password: "good"}
	api.On("VerifyAdminPassword", mock.Anything, "good").Return(true, nil).Once()
	api.On("BlockUser", mock.Anything, int64(42), req).Return(true, nil).Once()
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Kind == audit.KindUserBlock && e.Target == "user:42" &&
			e.AdminID == testAdmin.ID && e.AdminEmail == testAdmin.Email &&
			e.Details["reason"] == "spam"
	})).Return(nil).Once()

	ok, err := svc.BlockUser(testCtx(), 42, req)
	require.NoError(t, err)
	assert.True(t, ok)
	api.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestAuditFailureDoesNotFailAction(t *testing.T) {
	svc, api, pub := newLoggedIn(t)
	api.On("VerifyAdminPassword", mock.Anything, "good").Return(true, nil).Once()
	api.On("UnblockUser", mock.Anything, int64(7), "good").Return(true, nil).Once()
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	ok, err := svc.UnblockUser(testCtx(), 7, "good")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSubscriptionChanges(t *testing.T) {
	svc, api, pub := newLoggedIn(t)
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)
	api.On("VerifyAdminPassword", mock.Anything, "good").Return(true, nil)

	change := &models.SubscriptionChange{Success: true}
	api.On("GrantSubscription", mock.Anything, int64(5), 30, "good").Return(change, nil).Once()
	api.On("ReduceSubscription", mock.Anything, int64(5), 10, "good").Return(change, nil).Once()
	api.On("RevokeSubscription", mock.Anything, int64(5), "good").Return(true, nil).Once()

	got, err := svc.GrantSubscription(testCtx(), 5, 30, "good")
	require.NoError(t, err)
	assert.True(t, got.Success)

	got, err = svc.ReduceSubscription(testCtx(), 5, 10, "good")
	require.NoError(t, err)
	assert.True(t, got.Success)

	ok, err := svc.RevokeSubscription(testCtx(), 5, "good")
	require.NoError(t, err)
	assert.True(t, ok)

	api.AssertExpectations(t)
	pub.AssertNumberOfCalls(t, "Publish", 3)
}

func TestSubscriptionChanges_RejectNonPositiveDays(t *testing.T) {
	svc, api, _ := newLoggedIn(t)

	_, err := svc.GrantSubscription(testCtx(), 5, 0, "good")
	assert.ErrorIs(t, err, ErrInvalidDays)
	_, err = svc.ReduceSubscription(testCtx(), 5, -3, "good")
	assert.ErrorIs(t, err, ErrInvalidDays)

	api.AssertNotCalled(t, "VerifyAdminPassword", mock.Anything, mock.Anything)
}

func TestCreatePromoCode_ValidationErrorNotAudited(t *testing.T) {
	svc, api, pub := newLoggedIn(t)
	req := models.CreatePromoCodeRequest{Code: "x"}
	verr := &apiclient.ValidationError{Message: "field name is a required field"}
	api.On("CreatePromoCode", mock.Anything, req).Return(nil, verr).Once()

	_, err := svc.CreatePromoCode(testCtx(), req)
	require.ErrorIs(t, err, apiclient.ErrValidation)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPromoAndPaymentActionsAreAudited(t *testing.T) {
	svc, api, pub := newLoggedIn(t)
	promo := &models.PromoCode{ID: "p1", Code: "SPRING", Discount: models.Discount{Type: models.DiscountPercent, Value: 10}}
	linkReq := models.PaymentLinkRequest{PlanID: "m1", EmailOrID: "42"}

	api.On("CreatePromoCode", mock.Anything, mock.Anything).Return(promo, nil).Once()
	api.On("DeletePromoCode", mock.Anything, "p1").Return(true, nil).Once()
	api.On("CreatePaymentLink", mock.Anything, linkReq).
		Return(&models.PaymentLink{ConfirmationURL: "https://pay", PaymentID: "pay-1"}, nil).Once()

	var kinds []string
	pub.On("Publish", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		kinds = append(kinds, args.Get(1).(audit.Event).Kind)
	}).Return(nil)

	_, err := svc.CreatePromoCode(testCtx(), models.CreatePromoCodeRequest{Code: "spring"})
	require.NoError(t, err)
	_, err = svc.DeletePromoCode(testCtx(), "p1")
	require.NoError(t, err)
	link, err := svc.CreatePaymentLink(testCtx(), linkReq)
	require.NoError(t, err)
	assert.Equal(t, "https://pay", link.ConfirmationURL)

	assert.Equal(t, []string{audit.KindPromoCreate, audit.KindPromoDelete, audit.KindPaymentLink}, kinds)
}

func TestOverview(t *testing.T) {
	svc, api, _ := newLoggedIn(t)
	stats := &models.DashboardStats{UsersOnline: 3}
	api.On("GetDashboardStats", mock.Anything).Return(stats, nil).Once()
	api.On("GetPlans", mock.Anything).Return([]models.Plan{{ID: "m1"}}, nil).Once()
	api.On("GetPromoCodes", mock.Anything).Return([]models.PromoCode{{ID: "p1"}}, nil).Once()

	out, err := svc.Overview(testCtx())
	require.NoError(t, err)
	assert.Equal(t, 3, out.Stats.UsersOnline)
	assert.Len(t, out.Plans, 1)
	assert.Len(t, out.PromoCodes, 1)
}

func TestOverview_FirstErrorWins(t *testing.T) {
	svc, api, _ := newLoggedIn(t)
	api.On("GetDashboardStats", mock.Anything).Return(nil, apiclient.ErrTransport).Once()
	api.On("GetPlans", mock.Anything).Return([]models.Plan{}, nil).Maybe()
	api.On("GetPromoCodes", mock.Anything).Return([]models.PromoCode{}, nil).Maybe()

	out, err := svc.Overview(testCtx())
	require.ErrorIs(t, err, apiclient.ErrTransport)
	assert.Nil(t, out)
}

func TestOverview_RequestCancelledMidFlight(t *testing.T) {
	svc, api, _ := newLoggedIn(t)
	ctx, cancel := context.WithCancel(testCtx())
	started := make(chan struct{})

	api.On("GetDashboardStats", mock.Anything).Return(&models.DashboardStats{UsersOnline: 1}, nil).Once()
	api.On("GetPromoCodes", mock.Anything).Return([]models.PromoCode{{ID: "p1"}}, nil).Once()
	api.On("GetPlans", mock.Anything).Run(func(args mock.Arguments) {
		close(started)
		<-args.Get(0).(context.Context).Done()
	}).Return(nil, context.Canceled).Once()

	go func() {
		<-started
		cancel()
	}()

	out, err := svc.Overview(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)
	api.AssertExpectations(t)
}

func TestOverview_PlansFetchSeesCancelAfterFirstError(t *testing.T) {
	svc, api, _ := newLoggedIn(t)
	var planCtxErr error

	api.On("GetDashboardStats", mock.Anything).Return(nil, apiclient.ErrTransport).Once()
	api.On("GetPromoCodes", mock.Anything).Return([]models.PromoCode{}, nil).Maybe()
	api.On("GetPlans", mock.Anything).Run(func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		<-ctx.Done()
		planCtxErr = ctx.Err()
	}).Return(nil, context.Canceled).Once()

	_, err := svc.Overview(testCtx())
	require.ErrorIs(t, err, apiclient.ErrTransport)
	assert.ErrorIs(t, planCtxErr, context.Canceled)
}
