package api

// REST endpoints exposed by the backend (default http://localhost:3001).
const (
	// Authentication
	endpointLogin          = "/auth/login"
	endpointRegister       = "/auth/register"
	endpointForgotPassword = "/auth/forgot-password"
	endpointResetPassword  = "/auth/reset-password"
	endpointVerifyEmail    = "/auth/verify-email"
	endpointMe             = "/auth/me"

	// Users
	endpointUsers       = "/users"    // GET, POST
	endpointUsersByID   = "/users/%s" // GET, PUT, DELETE

	// Companies
	endpointCompanies     = "/companies"    // GET, POST
	endpointCompaniesByID = "/companies/%s" // GET, PUT, DELETE

	// Conversations
	endpointConversations       = "/conversations"           // GET, POST
	endpointConversationsByID   = "/conversations/%s"        // GET, PUT
	endpointConversationsAssign = "/conversations/%s/assign" // POST

	// Misc
	endpointWhatsAppConnections = "/whatsapp/connections" // GET
	endpointAgencies            = "/agencies"             // GET
	endpointReportsGenerate     = "/reports/generate"     // POST
)
