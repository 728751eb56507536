package constants

// JWT 相关
const (
	JWTTypeAccess = "access"
)

// HTTP Header
const (
	HeaderAuthorization = "Authorization"
	HeaderBearerPrefix  = "Bearer "
	HeaderRequestID     = "X-Request-ID"
)

// gin.Context 键
const (
	ContextKeyUserID    = "uid"
	ContextKeyRequestID = "rid"
)

// 数据库驱动
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// 分页
const (
	DefaultIssueLimit = 20
	MaxIssueLimit     = 100
)
