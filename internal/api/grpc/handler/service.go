package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Full method names of the Session service.
const (
	SessionServiceName   = "letsmeet.Session"
	SessionSignupMethod  = "/letsmeet.Session/Signup"
	SessionLoginMethod   = "/letsmeet.Session/Login"
	SessionRefreshMethod = "/letsmeet.Session/Refresh"
	SessionLogoutMethod  = "/letsmeet.Session/Logout"
	SessionWhoamiMethod  = "/letsmeet.Session/Whoami"
)

// SessionServer is the server API for the Session service.
type SessionServer interface {
	Signup(context.Context, *SignupRequest) (*SessionResponse, error)
	Login(context.Context, *LoginRequest) (*SessionResponse, error)
	Refresh(context.Context, *RefreshRequest) (*SessionResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	Whoami(context.Context, *WhoamiRequest) (*IdentityResponse, error)
}

// UnimplementedSessionServer can be embedded to have forward compatible implementations.
type UnimplementedSessionServer struct{}

func (UnimplementedSessionServer) Signup(context.Context, *SignupRequest) (*SessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Signup not implemented")
}
func (UnimplementedSessionServer) Login(context.Context, *LoginRequest) (*SessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedSessionServer) Refresh(context.Context, *RefreshRequest) (*SessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Refresh not implemented")
}
func (UnimplementedSessionServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedSessionServer) Whoami(context.Context, *WhoamiRequest) (*IdentityResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Whoami not implemented")
}

// RegisterSessionServer registers srv on s.
func RegisterSessionServer(s grpc.ServiceRegistrar, srv SessionServer) {
	s.RegisterService(&SessionServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](method string, call func(SessionServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SessionServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SessionServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// SessionServiceDesc is the grpc.ServiceDesc for the Session service.
var SessionServiceDesc = grpc.ServiceDesc{
	ServiceName: SessionServiceName,
	HandlerType: (*SessionServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Signup", Handler: unaryHandler(SessionSignupMethod, SessionServer.Signup)},
		{MethodName: "Login", Handler: unaryHandler(SessionLoginMethod, SessionServer.Login)},
		{MethodName: "Refresh", Handler: unaryHandler(SessionRefreshMethod, SessionServer.Refresh)},
		{MethodName: "Logout", Handler: unaryHandler(SessionLogoutMethod, SessionServer.Logout)},
		{MethodName: "Whoami", Handler: unaryHandler(SessionWhoamiMethod, SessionServer.Whoami)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "letsmeet/session",
}

// SessionClient is the client API for the Session service.
type SessionClient struct {
	cc grpc.ClientConnInterface
}

func NewSessionClient(cc grpc.ClientConnInterface) *SessionClient {
	return &SessionClient{cc: cc}
}

func (c *SessionClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	out := new(SessionResponse)
	return out, c.invoke(ctx, SessionSignupMethod, in, out, opts)
}

func (c *SessionClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	out := new(SessionResponse)
	return out, c.invoke(ctx, SessionLoginMethod, in, out, opts)
}

func (c *SessionClient) Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	out := new(SessionResponse)
	return out, c.invoke(ctx, SessionRefreshMethod, in, out, opts)
}

func (c *SessionClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	out := new(LogoutResponse)
	return out, c.invoke(ctx, SessionLogoutMethod, in, out, opts)
}

func (c *SessionClient) Whoami(ctx context.Context, in *WhoamiRequest, opts ...grpc.CallOption) (*IdentityResponse, error) {
	out := new(IdentityResponse)
	return out, c.invoke(ctx, SessionWhoamiMethod, in, out, opts)
}

func (c *SessionClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}
