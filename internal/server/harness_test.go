package server

import (
	"context"
	"strconv"
	"time"

	"github.com/parth10-05/verita/internal/config"
	"github.com/parth10-05/verita/internal/models"
	"github.com/parth10-05/verita/internal/repository"
	"github.com/parth10-05/verita/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-key-12345678901234567890123456789012"

// serverStubs bundles the repository stubs backing a test server so tests can
// override individual functions.
type serverStubs struct {
	users         *userRepoStub
	questions     *questionRepoStub
	answers       *answerRepoStub
	comments      *commentRepoStub
	votes         *voteRepoStub
	tags          *tagRepoStub
	notifications *notificationRepoStub
	adminLogs     *adminLogRepoStub
	stats         *statsRepoStub
}

// newTestServer builds a Server wired entirely with stub repositories and
// real services. Redis is nil; rate limiting fails open without it.
func newTestServer() (*Server, *serverStubs) {
	st := &serverStubs{
		users:         noopUserRepo(),
		questions:     noopQuestionRepo(),
		answers:       noopAnswerRepo(),
		comments:      noopCommentRepo(),
		votes:         noopVoteRepo(),
		tags:          noopTagRepo(),
		notifications: noopNotificationRepo(),
		adminLogs:     noopAdminLogRepo(),
		stats:         noopStatsRepo(),
	}

	cfg := &config.Config{
		JWTSecret:   testJWTSecret,
		AdminSecret: "test-admin-secret",
		Env:         "test",
	}

	s := &Server{
		config:           cfg,
		userRepo:         st.users,
		questionRepo:     st.questions,
		answerRepo:       st.answers,
		commentRepo:      st.comments,
		voteRepo:         st.votes,
		tagRepo:          st.tags,
		notificationRepo: st.notifications,
		adminLogRepo:     st.adminLogs,
		statsRepo:        st.stats,
	}

	s.userService = service.NewUserService(st.users, st.questions, st.answers)
	s.authService = service.NewAuthService(st.users, noopMailer{}, cfg)
	s.notificationService = service.NewNotificationService(st.notifications, st.users)
	s.questionService = service.NewQuestionService(
		st.questions, st.answers, st.comments, st.votes, st.tags,
		s.notificationService, s.userService.IsAdmin)
	s.answerService = service.NewAnswerService(
		st.answers, st.questions, st.comments, st.votes,
		s.notificationService, s.userService.IsAdmin)
	s.commentService = service.NewCommentService(
		st.comments, st.questions, st.answers,
		s.notificationService, s.userService.IsAdmin)
	s.voteService = service.NewVoteService(st.votes, st.questions, st.answers)
	s.adminService = service.NewAdminService(
		st.users, st.questions, st.answers, st.tags, st.adminLogs,
		st.stats, s.questionService, s.answerService, cfg.AdminSecret)

	return s, st
}

// newTestApp registers the server's routes on a fresh Fiber app.
func newTestApp(s *Server) *fiber.App {
	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

// signToken mints a token the auth middleware accepts for the given user.
func signToken(userID uint, exp time.Duration) string {
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": "verita-api",
		"aud": "verita-client",
		"exp": time.Now().Add(exp).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	str, _ := token.SignedString([]byte(testJWTSecret))
	return str
}

type noopMailer struct{}

func (noopMailer) Send(_, _, _ string) error { return nil }

// Function-field repository stubs. Tests override only what they assert on.

type userRepoStub struct {
	createFn         func(context.Context, *models.User) error
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	getByUsernameFn  func(context.Context, string) (*models.User, error)
	getByUsernamesFn func(context.Context, []string) ([]*models.User, error)
	listFn           func(context.Context, int, int) ([]*models.User, int64, error)
	updateFn         func(context.Context, *models.User) error
	updateFieldsFn   func(context.Context, uint, map[string]interface{}) error
	deleteFn         func(context.Context, uint) error
	setResetOTPFn    func(context.Context, uint, string, time.Time) error
	clearResetOTPFn  func(context.Context, uint) error
	recordImageFn    func(context.Context, *models.Image) error
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByUsernames(ctx context.Context, usernames []string) ([]*models.User, error) {
	return s.getByUsernamesFn(ctx, usernames)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]*models.User, int64, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error { return s.updateFn(ctx, u) }
func (s *userRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *userRepoStub) SetResetOTP(ctx context.Context, id uint, otp string, exp time.Time) error {
	return s.setResetOTPFn(ctx, id, otp, exp)
}
func (s *userRepoStub) ClearResetOTP(ctx context.Context, id uint) error {
	return s.clearResetOTPFn(ctx, id)
}
func (s *userRepoStub) RecordImage(ctx context.Context, image *models.Image) error {
	return s.recordImageFn(ctx, image)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "user", Role: models.RoleUser}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, gorm.ErrRecordNotFound },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, gorm.ErrRecordNotFound },
		getByUsernamesFn: func(_ context.Context, _ []string) ([]*models.User, error) {
			return nil, nil
		},
		listFn:          func(_ context.Context, _, _ int) ([]*models.User, int64, error) { return nil, 0, nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFieldsFn:  func(_ context.Context, _ uint, _ map[string]interface{}) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		setResetOTPFn:   func(_ context.Context, _ uint, _ string, _ time.Time) error { return nil },
		clearResetOTPFn: func(_ context.Context, _ uint) error { return nil },
		recordImageFn:   func(_ context.Context, _ *models.Image) error { return nil },
	}
}

type questionRepoStub struct {
	createFn       func(context.Context, *models.Question) error
	getByIDFn      func(context.Context, uint) (*models.Question, error)
	listFn         func(context.Context, int, int, string) ([]*models.Question, int64, error)
	listByTagFn    func(context.Context, string, int, int) ([]*models.Question, int64, error)
	listByAuthorFn func(context.Context, uint, int, int) ([]*models.Question, int64, error)
	searchFn       func(context.Context, string, int, int) ([]*models.Question, int64, error)
	updateFn       func(context.Context, *models.Question) error
	replaceTagsFn  func(context.Context, *models.Question, []models.Tag) error
	adjustFn       func(context.Context, *gorm.DB, uint, int, int) error
	deleteFn       func(context.Context, *gorm.DB, uint) error
}

func (s *questionRepoStub) Create(ctx context.Context, q *models.Question) error {
	return s.createFn(ctx, q)
}
func (s *questionRepoStub) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	return s.getByIDFn(ctx, id)
}
func (s *questionRepoStub) List(ctx context.Context, limit, offset int, sort string) ([]*models.Question, int64, error) {
	return s.listFn(ctx, limit, offset, sort)
}
func (s *questionRepoStub) ListByTag(ctx context.Context, slug string, limit, offset int) ([]*models.Question, int64, error) {
	return s.listByTagFn(ctx, slug, limit, offset)
}
func (s *questionRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Question, int64, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset)
}
func (s *questionRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]*models.Question, int64, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *questionRepoStub) Update(ctx context.Context, q *models.Question) error {
	return s.updateFn(ctx, q)
}
func (s *questionRepoStub) ReplaceTags(ctx context.Context, q *models.Question, tags []models.Tag) error {
	return s.replaceTagsFn(ctx, q, tags)
}
func (s *questionRepoStub) AdjustVoteCounters(ctx context.Context, tx *gorm.DB, id uint, up, down int) error {
	return s.adjustFn(ctx, tx, id, up, down)
}
func (s *questionRepoStub) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return s.deleteFn(ctx, tx, id)
}

func noopQuestionRepo() *questionRepoStub {
	return &questionRepoStub{
		createFn: func(_ context.Context, _ *models.Question) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Question, error) {
			return &models.Question{ID: id}, nil
		},
		listFn: func(_ context.Context, _, _ int, _ string) ([]*models.Question, int64, error) {
			return nil, 0, nil
		},
		listByTagFn: func(_ context.Context, _ string, _, _ int) ([]*models.Question, int64, error) {
			return nil, 0, nil
		},
		listByAuthorFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Question, int64, error) {
			return nil, 0, nil
		},
		searchFn: func(_ context.Context, _ string, _, _ int) ([]*models.Question, int64, error) {
			return nil, 0, nil
		},
		updateFn:      func(_ context.Context, _ *models.Question) error { return nil },
		replaceTagsFn: func(_ context.Context, _ *models.Question, _ []models.Tag) error { return nil },
		adjustFn:      func(_ context.Context, _ *gorm.DB, _ uint, _, _ int) error { return nil },
		deleteFn:      func(_ context.Context, _ *gorm.DB, _ uint) error { return nil },
	}
}

type answerRepoStub struct {
	createFn           func(context.Context, *models.Answer) error
	getByIDFn          func(context.Context, uint) (*models.Answer, error)
	listByQuestionFn   func(context.Context, uint, int, int) ([]*models.Answer, int64, error)
	idsByQuestionFn    func(context.Context, uint) ([]uint, error)
	listByUserFn       func(context.Context, uint, int, int) ([]*models.Answer, int64, error)
	countByUserFn      func(context.Context, uint) (int64, int64, error)
	updateFn           func(context.Context, *models.Answer) error
	adjustFn           func(context.Context, *gorm.DB, uint, int, int) error
	clearAcceptedFn    func(context.Context, *gorm.DB, uint) error
	setAcceptedFn      func(context.Context, *gorm.DB, uint, bool) error
	deleteFn           func(context.Context, *gorm.DB, uint) error
	deleteByQuestionFn func(context.Context, *gorm.DB, uint) error
}

func (s *answerRepoStub) Create(ctx context.Context, a *models.Answer) error {
	return s.createFn(ctx, a)
}
func (s *answerRepoStub) GetByID(ctx context.Context, id uint) (*models.Answer, error) {
	return s.getByIDFn(ctx, id)
}
func (s *answerRepoStub) ListByQuestion(ctx context.Context, questionID uint, limit, offset int) ([]*models.Answer, int64, error) {
	return s.listByQuestionFn(ctx, questionID, limit, offset)
}
func (s *answerRepoStub) IDsByQuestion(ctx context.Context, questionID uint) ([]uint, error) {
	return s.idsByQuestionFn(ctx, questionID)
}
func (s *answerRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Answer, int64, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *answerRepoStub) CountByUser(ctx context.Context, userID uint) (int64, int64, error) {
	return s.countByUserFn(ctx, userID)
}
func (s *answerRepoStub) Update(ctx context.Context, a *models.Answer) error {
	return s.updateFn(ctx, a)
}
func (s *answerRepoStub) AdjustVoteCounters(ctx context.Context, tx *gorm.DB, id uint, up, down int) error {
	return s.adjustFn(ctx, tx, id, up, down)
}
func (s *answerRepoStub) ClearAccepted(ctx context.Context, tx *gorm.DB, questionID uint) error {
	return s.clearAcceptedFn(ctx, tx, questionID)
}
func (s *answerRepoStub) SetAccepted(ctx context.Context, tx *gorm.DB, id uint, accepted bool) error {
	return s.setAcceptedFn(ctx, tx, id, accepted)
}
func (s *answerRepoStub) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return s.deleteFn(ctx, tx, id)
}
func (s *answerRepoStub) DeleteByQuestion(ctx context.Context, tx *gorm.DB, questionID uint) error {
	return s.deleteByQuestionFn(ctx, tx, questionID)
}

func noopAnswerRepo() *answerRepoStub {
	return &answerRepoStub{
		createFn: func(_ context.Context, _ *models.Answer) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Answer, error) {
			return &models.Answer{ID: id}, nil
		},
		listByQuestionFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Answer, int64, error) {
			return nil, 0, nil
		},
		idsByQuestionFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		listByUserFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Answer, int64, error) {
			return nil, 0, nil
		},
		countByUserFn:      func(_ context.Context, _ uint) (int64, int64, error) { return 0, 0, nil },
		updateFn:           func(_ context.Context, _ *models.Answer) error { return nil },
		adjustFn:           func(_ context.Context, _ *gorm.DB, _ uint, _, _ int) error { return nil },
		clearAcceptedFn:    func(_ context.Context, _ *gorm.DB, _ uint) error { return nil },
		setAcceptedFn:      func(_ context.Context, _ *gorm.DB, _ uint, _ bool) error { return nil },
		deleteFn:           func(_ context.Context, _ *gorm.DB, _ uint) error { return nil },
		deleteByQuestionFn: func(_ context.Context, _ *gorm.DB, _ uint) error { return nil },
	}
}

type commentRepoStub struct {
	createFn           func(context.Context, *models.Comment) error
	getByIDFn          func(context.Context, uint) (*models.Comment, error)
	listByQuestionFn   func(context.Context, uint, int, int) ([]*models.Comment, int64, error)
	listByAnswerFn     func(context.Context, uint, int, int) ([]*models.Comment, int64, error)
	updateFn           func(context.Context, *models.Comment) error
	deleteFn           func(context.Context, uint) error
	deleteByQuestionFn func(context.Context, *gorm.DB, uint) error
	deleteByAnswerFn   func(context.Context, *gorm.DB, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByQuestion(ctx context.Context, questionID uint, limit, offset int) ([]*models.Comment, int64, error) {
	return s.listByQuestionFn(ctx, questionID, limit, offset)
}
func (s *commentRepoStub) ListByAnswer(ctx context.Context, answerID uint, limit, offset int) ([]*models.Comment, int64, error) {
	return s.listByAnswerFn(ctx, answerID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error {
	return s.updateFn(ctx, c)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *commentRepoStub) DeleteByQuestion(ctx context.Context, tx *gorm.DB, questionID uint) error {
	return s.deleteByQuestionFn(ctx, tx, questionID)
}
func (s *commentRepoStub) DeleteByAnswer(ctx context.Context, tx *gorm.DB, answerID uint) error {
	return s.deleteByAnswerFn(ctx, tx, answerID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByQuestionFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, int64, error) {
			return nil, 0, nil
		},
		listByAnswerFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, int64, error) {
			return nil, 0, nil
		},
		updateFn:           func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:           func(_ context.Context, _ uint) error { return nil },
		deleteByQuestionFn: func(_ context.Context, _ *gorm.DB, _ uint) error { return nil },
		deleteByAnswerFn:   func(_ context.Context, _ *gorm.DB, _ uint) error { return nil },
	}
}

type voteRepoStub struct {
	getFn            func(context.Context, uint, models.TargetKind, uint) (*models.Vote, error)
	createFn         func(context.Context, *gorm.DB, *models.Vote) error
	updateValueFn    func(context.Context, *gorm.DB, uint, int, int) (int64, error)
	deleteFn         func(context.Context, *gorm.DB, uint) (int64, error)
	deleteByTargetFn func(context.Context, *gorm.DB, models.TargetKind, uint) error
	transactionFn    func(context.Context, func(tx *gorm.DB) error) error
}

func (s *voteRepoStub) Get(ctx context.Context, userID uint, kind models.TargetKind, targetID uint) (*models.Vote, error) {
	return s.getFn(ctx, userID, kind, targetID)
}
func (s *voteRepoStub) Create(ctx context.Context, tx *gorm.DB, v *models.Vote) error {
	return s.createFn(ctx, tx, v)
}
func (s *voteRepoStub) UpdateValue(ctx context.Context, tx *gorm.DB, id uint, oldValue, newValue int) (int64, error) {
	return s.updateValueFn(ctx, tx, id, oldValue, newValue)
}
func (s *voteRepoStub) Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	return s.deleteFn(ctx, tx, id)
}
func (s *voteRepoStub) DeleteByTarget(ctx context.Context, tx *gorm.DB, kind models.TargetKind, targetID uint) error {
	return s.deleteByTargetFn(ctx, tx, kind, targetID)
}
func (s *voteRepoStub) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.transactionFn(ctx, fn)
}

func noopVoteRepo() *voteRepoStub {
	return &voteRepoStub{
		getFn: func(_ context.Context, _ uint, _ models.TargetKind, _ uint) (*models.Vote, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn:         func(_ context.Context, _ *gorm.DB, _ *models.Vote) error { return nil },
		updateValueFn:    func(_ context.Context, _ *gorm.DB, _ uint, _, _ int) (int64, error) { return 1, nil },
		deleteFn:         func(_ context.Context, _ *gorm.DB, _ uint) (int64, error) { return 1, nil },
		deleteByTargetFn: func(_ context.Context, _ *gorm.DB, _ models.TargetKind, _ uint) error { return nil },
		transactionFn:    func(_ context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) },
	}
}

type tagRepoStub struct {
	getByIDFn      func(context.Context, uint) (*models.Tag, error)
	getByNameFn    func(context.Context, string) (*models.Tag, error)
	getBySlugFn    func(context.Context, string) (*models.Tag, error)
	listFn         func(context.Context, int, int) ([]*models.Tag, int64, error)
	listPopularFn  func(context.Context, int) ([]*models.TagWithCount, error)
	findOrCreateFn func(context.Context, string) (*models.Tag, error)
	updateFn       func(context.Context, *models.Tag) error
	deleteFn       func(context.Context, uint) error
}

func (s *tagRepoStub) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tagRepoStub) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	return s.getByNameFn(ctx, name)
}
func (s *tagRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *tagRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Tag, int64, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *tagRepoStub) ListPopular(ctx context.Context, limit int) ([]*models.TagWithCount, error) {
	return s.listPopularFn(ctx, limit)
}
func (s *tagRepoStub) FindOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	return s.findOrCreateFn(ctx, name)
}
func (s *tagRepoStub) Update(ctx context.Context, tag *models.Tag) error { return s.updateFn(ctx, tag) }
func (s *tagRepoStub) Delete(ctx context.Context, id uint) error         { return s.deleteFn(ctx, id) }

func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		getByIDFn:   func(_ context.Context, id uint) (*models.Tag, error) { return &models.Tag{ID: id}, nil },
		getByNameFn: func(_ context.Context, _ string) (*models.Tag, error) { return nil, gorm.ErrRecordNotFound },
		getBySlugFn: func(_ context.Context, slug string) (*models.Tag, error) {
			return &models.Tag{Slug: slug}, nil
		},
		listFn:        func(_ context.Context, _, _ int) ([]*models.Tag, int64, error) { return nil, 0, nil },
		listPopularFn: func(_ context.Context, _ int) ([]*models.TagWithCount, error) { return nil, nil },
		findOrCreateFn: func(_ context.Context, name string) (*models.Tag, error) {
			return &models.Tag{Name: name}, nil
		},
		updateFn: func(_ context.Context, _ *models.Tag) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

type notificationRepoStub struct {
	createFn          func(context.Context, *models.Notification) error
	getByIDFn         func(context.Context, uint) (*models.Notification, error)
	listByRecipientFn func(context.Context, uint, bool, int, int) ([]*models.Notification, int64, error)
	countUnreadFn     func(context.Context, uint) (int64, error)
	markReadFn        func(context.Context, uint) error
	markAllReadFn     func(context.Context, uint) error
	deleteFn          func(context.Context, uint) error
}

func (s *notificationRepoStub) Create(ctx context.Context, n *models.Notification) error {
	return s.createFn(ctx, n)
}
func (s *notificationRepoStub) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	return s.getByIDFn(ctx, id)
}
func (s *notificationRepoStub) ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]*models.Notification, int64, error) {
	return s.listByRecipientFn(ctx, recipientID, unreadOnly, limit, offset)
}
func (s *notificationRepoStub) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	return s.countUnreadFn(ctx, recipientID)
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, id uint) error {
	return s.markReadFn(ctx, id)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, recipientID uint) error {
	return s.markAllReadFn(ctx, recipientID)
}
func (s *notificationRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn: func(_ context.Context, _ *models.Notification) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Notification, error) {
			return &models.Notification{ID: id}, nil
		},
		listByRecipientFn: func(_ context.Context, _ uint, _ bool, _, _ int) ([]*models.Notification, int64, error) {
			return nil, 0, nil
		},
		countUnreadFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		markReadFn:    func(_ context.Context, _ uint) error { return nil },
		markAllReadFn: func(_ context.Context, _ uint) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

type adminLogRepoStub struct {
	createFn      func(context.Context, *models.AdminLog) error
	listFn        func(context.Context, int, int) ([]*models.AdminLog, int64, error)
	listByAdminFn func(context.Context, uint, int, int) ([]*models.AdminLog, int64, error)
}

func (s *adminLogRepoStub) Create(ctx context.Context, entry *models.AdminLog) error {
	return s.createFn(ctx, entry)
}
func (s *adminLogRepoStub) List(ctx context.Context, limit, offset int) ([]*models.AdminLog, int64, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *adminLogRepoStub) ListByAdmin(ctx context.Context, adminID uint, limit, offset int) ([]*models.AdminLog, int64, error) {
	return s.listByAdminFn(ctx, adminID, limit, offset)
}

func noopAdminLogRepo() *adminLogRepoStub {
	return &adminLogRepoStub{
		createFn: func(_ context.Context, _ *models.AdminLog) error { return nil },
		listFn: func(_ context.Context, _, _ int) ([]*models.AdminLog, int64, error) {
			return nil, 0, nil
		},
		listByAdminFn: func(_ context.Context, _ uint, _, _ int) ([]*models.AdminLog, int64, error) {
			return nil, 0, nil
		},
	}
}

type statsRepoStub struct {
	dashboardFn func(context.Context) (*repository.DashboardStats, error)
}

func (s *statsRepoStub) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	return s.dashboardFn(ctx)
}

func noopStatsRepo() *statsRepoStub {
	return &statsRepoStub{
		dashboardFn: func(_ context.Context) (*repository.DashboardStats, error) {
			return &repository.DashboardStats{}, nil
		},
	}
}
