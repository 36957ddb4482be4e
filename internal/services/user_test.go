package services

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/perdb/perdir-backend/internal/logger"
	"github.com/perdb/perdir-backend/internal/repos"
	"github.com/perdb/perdir-backend/internal/schemas"
	"github.com/perdb/perdir-backend/internal/types"
)

type testEnv struct {
	db        *gorm.DB
	users     UserService
	emails    EmailService
	phones    PhoneService
	emailRepo repos.EmailRepo
	phoneRepo repos.PhoneNumberRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// One connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&types.User{}, &types.Email{}, &types.PhoneNumber{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	userRepo := repos.NewUserRepo(db, log)
	emailRepo := repos.NewEmailRepo(db, log)
	phoneRepo := repos.NewPhoneNumberRepo(db, log)

	return &testEnv{
		db:        db,
		users:     NewUserService(db, log, userRepo, emailRepo, phoneRepo),
		emails:    NewEmailService(db, log, emailRepo),
		phones:    NewPhoneService(db, log, phoneRepo),
		emailRepo: emailRepo,
		phoneRepo: phoneRepo,
	}
}

func userInput(firstName, lastName string, emails, phones []string) schemas.UserInput {
	es := make([]schemas.EmailInput, 0, len(emails))
	for _, e := range emails {
		es = append(es, schemas.EmailInput{Email: e})
	}
	ps := make([]schemas.PhoneInput, 0, len(phones))
	for _, p := range phones {
		ps = append(ps, schemas.PhoneInput{Number: p})
	}
	return schemas.UserInput{
		FirstName:    firstName,
		LastName:     lastName,
		Emails:       &es,
		PhoneNumbers: &ps,
	}
}

func TestCreateUserPersistsAllChildren(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.users.Create(ctx, userInput("John", "Doe",
		[]string{"john@example.com", "jdoe@example.com"},
		[]string{"1234567890"}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned user id")
	}
	if len(created.Emails) != 2 || len(created.PhoneNumbers) != 1 {
		t.Fatalf("expected 2 emails and 1 phone, got %d and %d", len(created.Emails), len(created.PhoneNumbers))
	}
	seen := map[int64]bool{}
	for _, e := range created.Emails {
		if e.ID == 0 || seen[e.ID] {
			t.Fatalf("expected distinct assigned email ids, got %+v", created.Emails)
		}
		seen[e.ID] = true
	}
	if created.Emails[0].Email != "john@example.com" || created.Emails[1].Email != "jdoe@example.com" {
		t.Fatalf("emails out of order or wrong: %+v", created.Emails)
	}
	if created.PhoneNumbers[0].Number != "1234567890" {
		t.Fatalf("unexpected phone: %+v", created.PhoneNumbers[0])
	}

	reloaded, err := env.users.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Emails) != 2 || len(reloaded.PhoneNumbers) != 1 {
		t.Fatalf("reload lost children: %+v", reloaded)
	}
}

func TestCreateUserIgnoresSubmittedIDs(t *testing.T) {
	env := newTestEnv(t)

	in := userInput("John", "Doe", []string{"john@example.com"}, nil)
	in.ID = 999
	(*in.Emails)[0].ID = 888

	created, err := env.users.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 999 {
		t.Fatalf("submitted user id must not be honored")
	}
	if created.Emails[0].ID == 888 {
		t.Fatalf("submitted email id must not be honored")
	}
}

func TestGetUserNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.GetByID(context.Background(), 4242)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestListUsersEqualityFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.users.Create(ctx, userInput("John", "Doe", nil, nil)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.users.Create(ctx, userInput("Jane", "Doe", nil, nil)); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := env.users.List(ctx, nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 users, got %d", len(all))
	}

	johns, err := env.users.List(ctx, map[string]string{"firstName": "John"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(johns) != 1 || johns[0].FirstName != "John" {
		t.Fatalf("expected exactly John, got %+v", johns)
	}

	// Case-sensitive exact match.
	lower, err := env.users.List(ctx, map[string]string{"firstName": "john"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(lower) != 0 {
		t.Fatalf("expected no match for lowercase, got %+v", lower)
	}

	does, err := env.users.List(ctx, map[string]string{"lastName": "Doe"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(does) != 2 {
		t.Fatalf("expected 2 Does, got %d", len(does))
	}
}

func TestListUsersRejectsUnknownFilterKey(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.List(context.Background(), map[string]string{"nickname": "Johnny"})
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected invalid filter error, got %v", err)
	}
}

func TestReplaceSwapsEntireChildSet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.users.Create(ctx, userInput("John", "Doe",
		[]string{"old@example.com"}, []string{"1111111"}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldEmailID := created.Emails[0].ID
	oldPhoneID := created.PhoneNumbers[0].ID

	replaced, err := env.users.Replace(ctx, created.ID, userInput("Johnny", "Doe",
		[]string{"new1@example.com", "new2@example.com"}, []string{"2222222"}))
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if replaced.FirstName != "Johnny" {
		t.Fatalf("expected name overwrite, got %q", replaced.FirstName)
	}
	if len(replaced.Emails) != 2 || len(replaced.PhoneNumbers) != 1 {
		t.Fatalf("unexpected child counts: %+v", replaced)
	}
	if replaced.Emails[0].Email != "new1@example.com" || replaced.Emails[1].Email != "new2@example.com" {
		t.Fatalf("unexpected emails: %+v", replaced.Emails)
	}
	if replaced.PhoneNumbers[0].Number != "2222222" {
		t.Fatalf("unexpected phone: %+v", replaced.PhoneNumbers)
	}
	if replaced.Emails[0].ID == oldEmailID || replaced.PhoneNumbers[0].ID == oldPhoneID {
		t.Fatalf("child ids must never survive a replace")
	}

	if _, err := env.emailRepo.GetByID(ctx, nil, oldEmailID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("old email should be gone, got %v", err)
	}
	if _, err := env.phoneRepo.GetByID(ctx, nil, oldPhoneID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("old phone should be gone, got %v", err)
	}
}

func TestReplaceWithEmptyCollectionsClearsChildren(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.users.Create(ctx, userInput("John", "Doe",
		[]string{"a@example.com"}, []string{"123"}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	replaced, err := env.users.Replace(ctx, created.ID, userInput("John", "Doe", nil, nil))
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(replaced.Emails) != 0 || len(replaced.PhoneNumbers) != 0 {
		t.Fatalf("expected cleared children, got %+v", replaced)
	}
	if replaced.Emails == nil || replaced.PhoneNumbers == nil {
		t.Fatalf("cleared collections must stay non-nil for serialization")
	}
}

func TestReplaceNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.Replace(context.Background(), 4242, userInput("X", "Y", nil, nil))
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

// Two edits of the same user are not merged: whichever commits last fully
// determines the stored aggregate.
func TestReplaceLastWriteWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.users.Create(ctx, userInput("John", "Doe",
		[]string{"orig@example.com"}, nil))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := env.users.Replace(ctx, created.ID, userInput("First", "Writer",
		[]string{"first@example.com"}, []string{"111"})); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	if _, err := env.users.Replace(ctx, created.ID, userInput("Second", "Writer",
		[]string{"second@example.com"}, nil)); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	final, err := env.users.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if final.FirstName != "Second" {
		t.Fatalf("expected last write to win, got %q", final.FirstName)
	}
	if len(final.Emails) != 1 || final.Emails[0].Email != "second@example.com" {
		t.Fatalf("expected only the last email set, got %+v", final.Emails)
	}
	if len(final.PhoneNumbers) != 0 {
		t.Fatalf("expected no trace of the first write's phones, got %+v", final.PhoneNumbers)
	}
}

func TestDeleteUserCascadesToChildren(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.users.Create(ctx, userInput("John", "Doe",
		[]string{"a@example.com"}, []string{"123"}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	emailID := created.Emails[0].ID
	phoneID := created.PhoneNumbers[0].ID

	if err := env.users.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := env.users.GetByID(ctx, created.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("user should be gone, got %v", err)
	}
	if _, err := env.emailRepo.GetByID(ctx, nil, emailID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("email should be gone, got %v", err)
	}
	if _, err := env.phoneRepo.GetByID(ctx, nil, phoneID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("phone should be gone, got %v", err)
	}
}

func TestDeleteUserNotFoundLeavesStateUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.users.Create(ctx, userInput("John", "Doe", nil, nil))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := env.users.Delete(ctx, 4242); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}

	if _, err := env.users.GetByID(ctx, created.ID); err != nil {
		t.Fatalf("existing user must be unaffected: %v", err)
	}
}
