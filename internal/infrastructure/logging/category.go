package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	IO              Category = "IO"
	Internal        Category = "Internal"
	RabbitMQ        Category = "RabbitMQ"
	Mongo           Category = "Mongo"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
	Protocol        Category = "Protocol"
)

const (
	// General
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	ExternalService SubCategory = "ExternalService"

	// Protocol
	RoomLifecycle SubCategory = "RoomLifecycle"
	Membership    SubCategory = "Membership"
	Messaging     SubCategory = "Messaging"
	Roster        SubCategory = "Roster"
	Dispatch      SubCategory = "Dispatch"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	ClientIp     ExtraKey = "ClientIp"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	RoomID       ExtraKey = "RoomID"
	UserID       ExtraKey = "UserID"
	Event        ExtraKey = "Event"
	ErrorMessage ExtraKey = "ErrorMessage"
)
