// Package mocks holds moq-style test doubles for the repository interfaces.
package mocks

//go:generate moq -out user_repository_mock.go -pkg mocks ../ UserRepository
//go:generate moq -out agency_repository_mock.go -pkg mocks ../ AgencyRepository
//go:generate moq -out category_repository_mock.go -pkg mocks ../ CategoryRepository
//go:generate moq -out routing_rule_repository_mock.go -pkg mocks ../ RoutingRuleRepository
//go:generate moq -out ticket_repository_mock.go -pkg mocks ../ TicketRepository
//go:generate moq -out communication_repository_mock.go -pkg mocks ../ CommunicationRepository
//go:generate moq -out ticket_history_repository_mock.go -pkg mocks ../ TicketHistoryRepository
