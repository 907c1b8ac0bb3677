package router

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	apicontext "github.com/bryanmylee/LetsMeetService/internal/api/context"
	"github.com/bryanmylee/LetsMeetService/internal/api/grpc/handler"
	"github.com/bryanmylee/LetsMeetService/internal/config"
	"github.com/bryanmylee/LetsMeetService/internal/hasher"
	"github.com/bryanmylee/LetsMeetService/internal/repository/memory"
	"github.com/bryanmylee/LetsMeetService/internal/service"
	"github.com/bryanmylee/LetsMeetService/internal/testutil"
	"github.com/bryanmylee/LetsMeetService/internal/token"
)

func newSessionClient(t *testing.T) *handler.SessionClient {
	t.Helper()

	store := memory.NewStore()
	codec := token.NewJWT(config.Auth{
		AccessSecret:  "access",
		RefreshSecret: "refresh",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
	lg := testutil.MakeNoopLogger()
	auth := service.NewAuth(store, store, hasher.NewBcrypt(bcrypt.MinCost), codec, lg)

	s := New(auth, apicontext.NewManager(), lg).Register()
	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return handler.NewSessionClient(conn)
}

func TestRouter_SessionLifecycle(t *testing.T) {
	client := newSessionClient(t)
	ctx := context.Background()

	signup, err := client.Signup(ctx, &handler.SignupRequest{EventID: "xy12", Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "xy12", signup.EventID)

	_, err = client.Signup(ctx, &handler.SignupRequest{EventID: "xy12", Username: "alice", Password: "other"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = client.Login(ctx, &handler.LoginRequest{EventID: "xy12", Username: "alice", Password: "wrong"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	login, err := client.Login(ctx, &handler.LoginRequest{EventID: "xy12", Username: "alice", Password: "secret"})
	require.NoError(t, err)

	refreshed, err := client.Refresh(ctx, &handler.RefreshRequest{EventID: "xy12", RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	_, err = client.Refresh(ctx, &handler.RefreshRequest{EventID: "xy12", RefreshToken: login.RefreshToken})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	authCtx := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+refreshed.AccessToken)
	who, err := client.Whoami(authCtx, &handler.WhoamiRequest{})
	require.NoError(t, err)
	assert.Equal(t, &handler.IdentityResponse{EventID: "xy12", Username: "alice", IsAdmin: false}, who)

	out, err := client.Logout(ctx, &handler.LogoutRequest{EventID: "xy12", RefreshToken: refreshed.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, "Logged out", out.Message)

	_, err = client.Refresh(ctx, &handler.RefreshRequest{EventID: "xy12", RefreshToken: refreshed.RefreshToken})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestRouter_WhoamiRequiresAccessToken(t *testing.T) {
	client := newSessionClient(t)
	ctx := context.Background()

	_, err := client.Whoami(ctx, &handler.WhoamiRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	malformed := metadata.AppendToOutgoingContext(ctx, "authorization", "Token abc")
	_, err = client.Whoami(malformed, &handler.WhoamiRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	forged := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer not.a.jwt")
	_, err = client.Whoami(forged, &handler.WhoamiRequest{})
	assert.NotEqual(t, codes.OK, status.Code(err))
}
