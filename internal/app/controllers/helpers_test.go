package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cybersleuth25/unisphere/internal/app/controllers"
	"github.com/cybersleuth25/unisphere/internal/app/models"
	"github.com/cybersleuth25/unisphere/internal/app/models/dto"
	"github.com/cybersleuth25/unisphere/internal/app/routes"
	"github.com/cybersleuth25/unisphere/internal/app/services"
	"github.com/cybersleuth25/unisphere/internal/middleware"
	"github.com/cybersleuth25/unisphere/internal/pkg/auth"
)

// Stub services let controller tests run without a database. Each stub
// records the arguments of its last call and returns canned values.

type stubAuthService struct {
	services.AuthService
	registerResp *dto.TokenResponse
	registerErr  error
	loginResp    *dto.TokenResponse
	loginErr     error
}

func (s *stubAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *stubAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	return s.loginResp, s.loginErr
}

type stubUserService struct {
	services.UserService
	user *models.User
	err  error
}

func (s *stubUserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.user, s.err
}

func (s *stubUserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.user, s.err
}

type stubPostService struct {
	services.PostService

	listResp   []dto.PostResponse
	listErr    error
	listType   string
	listFilter dto.PostListFilter

	createResp dto.PostResponse
	createErr  error

	likeResp   *dto.LikeResponse
	likeErr    error
	likePostID int64
	likeUserID int64
}

func (s *stubPostService) ListPosts(ctx context.Context, rawType string, filter *dto.PostListFilter, viewerID int64) ([]dto.PostResponse, error) {
	s.listType = rawType
	s.listFilter = *filter
	return s.listResp, s.listErr
}

func (s *stubPostService) CreatePost(ctx context.Context, authorID int64, req *dto.CreatePostRequest, image *multipart.FileHeader) (dto.PostResponse, error) {
	return s.createResp, s.createErr
}

func (s *stubPostService) ToggleLike(ctx context.Context, postID, userID int64) (*dto.LikeResponse, error) {
	s.likePostID = postID
	s.likeUserID = userID
	return s.likeResp, s.likeErr
}

type stubFriendshipService struct {
	services.FriendshipService

	actionErr  error
	lastAction *dto.FriendActionRequest

	statusResp *dto.FriendshipStatusResponse
	statusErr  error

	friends []*dto.UserSummary
}

func (s *stubFriendshipService) PerformAction(ctx context.Context, actorID int64, req *dto.FriendActionRequest) error {
	s.lastAction = req
	return s.actionErr
}

func (s *stubFriendshipService) StatusOf(ctx context.Context, userID int64, otherEmail string) (*dto.FriendshipStatusResponse, error) {
	return s.statusResp, s.statusErr
}

func (s *stubFriendshipService) ListFriends(ctx context.Context, userID int64) ([]*dto.UserSummary, error) {
	return s.friends, nil
}

type stubChatService struct {
	services.ChatService

	startResp *dto.StartConversationResponse
	startErr  error

	listResp []dto.MessageResponse
	listErr  error

	sendResp *dto.MessageResponse
	sendErr  error
	sentBody string
}

func (s *stubChatService) StartConversation(ctx context.Context, userID int64, otherEmail string) (*dto.StartConversationResponse, error) {
	return s.startResp, s.startErr
}

func (s *stubChatService) ListMessages(ctx context.Context, conversationID, userID int64) ([]dto.MessageResponse, error) {
	return s.listResp, s.listErr
}

func (s *stubChatService) SendMessage(ctx context.Context, conversationID, userID int64, body string) (*dto.MessageResponse, error) {
	s.sentBody = body
	return s.sendResp, s.sendErr
}

type stubSearchService struct {
	services.SearchService
	resp *dto.GlobalSearchResponse
}

func (s *stubSearchService) Search(ctx context.Context, query string, viewerID int64) (*dto.GlobalSearchResponse, error) {
	return s.resp, nil
}

// testEnv bundles the router and stubs of one controller test.
type testEnv struct {
	router     *gin.Engine
	jwtService *auth.JWTService

	authSvc   *stubAuthService
	userSvc   *stubUserService
	postSvc   *stubPostService
	friendSvc *stubFriendshipService
	chatSvc   *stubChatService
	searchSvc *stubSearchService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		authSvc:   &stubAuthService{},
		userSvc:   &stubUserService{},
		postSvc:   &stubPostService{},
		friendSvc: &stubFriendshipService{},
		chatSvc:   &stubChatService{},
		searchSvc: &stubSearchService{},
	}

	env.jwtService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "controller-test-secret",
		AccessTokenExp:  time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "unisphere-test",
	})

	lgr := zerolog.Nop()
	env.router = gin.New()
	routes.SetupRouter(env.router,
		controllers.NewAuthController(env.authSvc, lgr),
		controllers.NewUserController(env.userSvc, lgr),
		controllers.NewPostController(env.postSvc, lgr),
		controllers.NewFriendshipController(env.friendSvc, lgr),
		controllers.NewChatController(env.chatSvc, lgr),
		controllers.NewSearchController(env.searchSvc, lgr),
		middleware.NewAuthMiddleware(env.jwtService),
	)
	return env
}

// token issues a signed access token for the given user id.
func (e *testEnv) token(t *testing.T, userID int64, email string, role models.RoleType) string {
	t.Helper()
	accessToken, _, _, _, err := e.jwtService.GenerateTokenPair(&models.User{
		ID:    userID,
		Email: email,
		Role:  role,
	})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return accessToken
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
