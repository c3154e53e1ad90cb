package types

// ContextKey - тип ключей контекста команд, чтобы не пересекаться
// с чужими значениями.
type ContextKey string

// ClientAppKey - ключ, под которым корневая команда кладет *client.App
// в контекст для подкоманд.
const ClientAppKey ContextKey = "app"
