package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sams-storefront/internal/domain"
	"sams-storefront/internal/i18n"
	resrepo "sams-storefront/internal/repository/reservation"
)

type failingRepo struct {
	resrepo.Repository
}

func (failingRepo) Create(_ context.Context, _ domain.Reservation) (*domain.Reservation, error) {
	return nil, errors.New("boom")
}

func strptr(s string) *string { return &s }

func newService(repo resrepo.Repository) *Service {
	svc := New(repo, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC) }
	return svc
}

func validInput() Input {
	return Input{
		Name:   "  Awa Koné ",
		Email:  "awa@example.ci",
		Phone:  "07 08 09 10",
		Guests: 3,
		Date:   strptr("2026-03-20"),
		Time:   "20:00",
	}
}

func TestValidate(t *testing.T) {
	svc := newService(resrepo.NewMemory())

	cases := []struct {
		name   string
		mutate func(*Input)
		key    string
	}{
		{"valid", func(*Input) {}, ""},
		{"empty name", func(in *Input) { in.Name = "" }, i18n.KeyReservationName},
		{"one letter name after trim", func(in *Input) { in.Name = "  A  " }, i18n.KeyReservationName},
		{"two letter name", func(in *Input) { in.Name = "Al" }, ""},
		{"missing email", func(in *Input) { in.Email = "" }, i18n.KeyReservationEmail},
		{"email without domain dot", func(in *Input) { in.Email = "awa@example" }, i18n.KeyReservationEmail},
		{"email with space", func(in *Input) { in.Email = "a wa@example.ci" }, i18n.KeyReservationEmail},
		{"email with two ats", func(in *Input) { in.Email = "a@b@c.ci" }, i18n.KeyReservationEmail},
		{"short phone", func(in *Input) { in.Phone = "0708091" }, i18n.KeyReservationPhone},
		{"padded short phone", func(in *Input) { in.Phone = "   0708   " }, i18n.KeyReservationPhone},
		{"eight char phone", func(in *Input) { in.Phone = "07080910" }, ""},
		{"blank date", func(in *Input) { in.Date = strptr("") }, i18n.KeyReservationDate},
		{"malformed date", func(in *Input) { in.Date = strptr("20/03/2026") }, i18n.KeyReservationDate},
		{"past date", func(in *Input) { in.Date = strptr("2026-03-13") }, i18n.KeyReservationDate},
		{"today", func(in *Input) { in.Date = strptr("2026-03-14") }, ""},
		{"omitted date", func(in *Input) { in.Date = nil }, ""},
		{"name checked before email", func(in *Input) { in.Name = ""; in.Email = "" }, i18n.KeyReservationName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, note := svc.Validate(in, domain.LangEN)
			if tc.key == "" {
				assert.Nil(t, note)
				return
			}
			require.NotNil(t, note)
			assert.Equal(t, domain.SeverityError, note.Severity)
			assert.Equal(t, tc.key, note.Key)
		})
	}
}

func TestValidate_Defaults(t *testing.T) {
	svc := newService(resrepo.NewMemory())
	in := validInput()
	in.Date = nil
	in.Guests = 0

	res, note := svc.Validate(in, domain.LangFR)
	require.Nil(t, note)
	assert.Equal(t, "2026-03-14", res.Date)
	assert.Equal(t, 2, res.Guests)
	assert.Equal(t, "Awa Koné", res.Name)
}

func TestSubmit_StoresAndNotifies(t *testing.T) {
	repo := resrepo.NewMemory()
	svc := newService(repo)
	ctx := context.Background()

	got, err := svc.Submit(ctx, "s1", validInput(), domain.LangFR)
	require.NoError(t, err)
	require.NotNil(t, got.Reservation)
	assert.Equal(t, domain.SeveritySuccess, got.Notification.Severity)
	assert.Equal(t, "Réservation soumise avec succès ! Nous vous contacterons bientôt.", got.Notification.Message)

	list, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2026-03-20", list[0].Date)
}

func TestSubmit_RejectedFormIsNotStored(t *testing.T) {
	repo := resrepo.NewMemory()
	svc := newService(repo)
	ctx := context.Background()
	in := validInput()
	in.Email = "nope"

	got, err := svc.Submit(ctx, "s1", in, domain.LangEN)
	require.NoError(t, err)
	assert.Nil(t, got.Reservation)
	assert.Equal(t, "Please enter a valid email address.", got.Notification.Message)

	list, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSubmit_RepoError(t *testing.T) {
	svc := newService(failingRepo{})

	_, err := svc.Submit(context.Background(), "s1", validInput(), domain.LangEN)
	assert.Error(t, err)
}
