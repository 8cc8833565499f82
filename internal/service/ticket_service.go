package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/citizen-engagement/internal/ai"
	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/events"
	"github.com/spec-kit/citizen-engagement/internal/persistence"
	"github.com/spec-kit/citizen-engagement/internal/repository"
	apperrors "github.com/spec-kit/citizen-engagement/pkg/util/errorutil"
)

// AgencySuggester proposes an agency for a ticket no routing rule covers.
type AgencySuggester interface {
	SuggestAgency(ctx context.Context, req ai.Request) (string, error)
}

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets        repository.TicketRepository
	communications repository.CommunicationRepository
	history        repository.TicketHistoryRepository
	categories     repository.CategoryRepository
	agencies       repository.AgencyRepository
	users          repository.UserRepository
	rules          repository.RoutingRuleRepository
	routing        *RoutingRuleService
	suggester      AgencySuggester
	tx             persistence.Transactor
	dispatcher     events.Dispatcher
	logger         *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
// Suggester and Dispatcher are optional.
type TicketDependencies struct {
	TicketRepo        repository.TicketRepository
	CommunicationRepo repository.CommunicationRepository
	HistoryRepo       repository.TicketHistoryRepository
	CategoryRepo      repository.CategoryRepository
	AgencyRepo        repository.AgencyRepository
	UserRepo          repository.UserRepository
	RuleRepo          repository.RoutingRuleRepository
	Suggester         AgencySuggester
	Tx                persistence.Transactor
	Dispatcher        events.Dispatcher
	Logger            *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title                   string
	DetailedDescription     string
	Location                string
	Priority                *domain.TicketPriority
	CategoryID              *string
	IsAnonymous             bool
	AnonymousCreatorName    *string
	AnonymousCreatorContact *string
}

// TicketListQuery holds caller-supplied list filters. Access scoping is applied on top.
type TicketListQuery struct {
	Statuses         []domain.TicketStatus
	Priority         *domain.TicketPriority
	CategoryID       *string
	AssignedAgencyID *string
	AssignedAgentID  *string
	CitizenID        *string
	Search           string
}

// TicketAgentUpdateInput is a partial status/priority update.
type TicketAgentUpdateInput struct {
	Status   *domain.TicketStatus
	Priority *domain.TicketPriority
}

// CommunicationInput is a new message on a ticket thread.
type CommunicationInput struct {
	Message    string
	IsInternal bool
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:        deps.TicketRepo,
		communications: deps.CommunicationRepo,
		history:        deps.HistoryRepo,
		categories:     deps.CategoryRepo,
		agencies:       deps.AgencyRepo,
		users:          deps.UserRepo,
		rules:          deps.RuleRepo,
		routing: NewRoutingRuleService(RoutingRuleDependencies{
			RuleRepo:     deps.RuleRepo,
			CategoryRepo: deps.CategoryRepo,
			AgencyRepo:   deps.AgencyRepo,
		}),
		suggester:  deps.Suggester,
		tx:         deps.Tx,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// CreateTicket files a ticket. Anonymous tickets carry the creator's name and
// contact instead of a citizen id; named tickets require a signed-in user.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput, user *domain.User) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		Title:               strings.TrimSpace(input.Title),
		DetailedDescription: strings.TrimSpace(input.DetailedDescription),
		Location:            strings.TrimSpace(input.Location),
		Priority:            domain.TicketPriorityMedium,
		Status:              domain.TicketStatusNew,
		IsAnonymous:         input.IsAnonymous,
		CategoryID:          input.CategoryID,
	}
	if input.Priority != nil {
		ticket.Priority = *input.Priority
	}

	if input.IsAnonymous {
		name, contact := trimmed(input.AnonymousCreatorName), trimmed(input.AnonymousCreatorContact)
		var fields []apperrors.FieldError
		if name == nil || *name == "" {
			fields = append(fields, apperrors.FieldError{Field: "anonymousCreatorName", Message: "is required for anonymous tickets"})
		}
		if contact == nil || *contact == "" {
			fields = append(fields, apperrors.FieldError{Field: "anonymousCreatorContact", Message: "is required for anonymous tickets"})
		}
		if len(fields) > 0 {
			return nil, apperrors.NewValidationError("validation failed", fields)
		}
		ticket.AnonymousCreatorName = name
		ticket.AnonymousCreatorContact = contact
	} else {
		if user == nil {
			return nil, apperrors.NewBadRequest("sign in to file a named ticket or submit it anonymously")
		}
		ticket.CitizenID = &user.ID
	}

	var category *domain.Category
	if input.CategoryID != nil {
		var err error
		category, err = s.categories.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, notFoundOr(err, "category", *input.CategoryID)
		}
	}

	agencyID, err := s.route(ctx, ticket, category)
	if err != nil {
		return nil, err
	}
	ticket.AssignedAgencyID = agencyID

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.logger.Info("ticket created",
		zap.String("ticket_id", ticket.ID),
		zap.Bool("anonymous", ticket.IsAnonymous),
		zap.Stringp("agency_id", ticket.AssignedAgencyID))

	var actorID *string
	if user != nil {
		actorID = &user.ID
	}
	s.publish(ctx, events.New(events.EventTicketCreated, ticket.ID, actorID, events.TicketCreatedPayload{
		Title:            ticket.Title,
		CitizenID:        ticket.CitizenID,
		AnonymousContact: ticket.AnonymousCreatorContact,
		AssignedAgencyID: ticket.AssignedAgencyID,
	}))
	return ticket, nil
}

// GetTicket enforces the single-ticket ACL: citizens see their own tickets,
// staff see tickets routed to their agency, admins see everything.
func (s *TicketService) GetTicket(ctx context.Context, id string, user *domain.User) (*domain.Ticket, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "ticket", id)
	}
	if !canAccessTicket(user, ticket) {
		return nil, apperrors.NewForbidden("you do not have access to this ticket")
	}
	return ticket, nil
}

// ListTickets applies the same ACL as GetTicket as a query predicate.
// Staff without an agency get an empty page.
func (s *TicketService) ListTickets(ctx context.Context, query TicketListQuery, page domain.PageRequest, sort domain.Sort, user *domain.User) (domain.Page[domain.Ticket], error) {
	if err := requireUser(user); err != nil {
		return domain.Page[domain.Ticket]{}, err
	}

	filter := repository.TicketFilter{
		AssignedAgencyID: query.AssignedAgencyID,
		AssignedAgentID:  query.AssignedAgentID,
		CategoryID:       query.CategoryID,
		Statuses:         query.Statuses,
		Priority:         query.Priority,
		Search:           strings.TrimSpace(query.Search),
	}
	switch user.Role {
	case domain.RoleAdmin:
		filter.CitizenID = query.CitizenID
	case domain.RoleAgencyStaff:
		if user.AgencyID == nil {
			return domain.NewPage[domain.Ticket](nil, 0, page), nil
		}
		filter.AssignedAgencyID = user.AgencyID
	case domain.RoleCitizen:
		filter.CitizenID = &user.ID
		filter.ExcludeAnonymous = true
	default:
		return domain.Page[domain.Ticket]{}, apperrors.NewForbidden("unknown role")
	}

	items, total, err := s.tickets.List(ctx, filter, page, sort)
	if err != nil {
		return domain.Page[domain.Ticket]{}, apperrors.MapError(err)
	}
	return domain.NewPage(items, total, page), nil
}

// UpdateTicketByAgent changes status and/or priority. Status moves follow the
// workflow table; the update and its history land in one transaction.
func (s *TicketService) UpdateTicketByAgent(ctx context.Context, id string, input TicketAgentUpdateInput, agent *domain.User) (*domain.Ticket, error) {
	ticket, err := s.ticketForStaff(ctx, id, agent)
	if err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	var (
		action  domain.TicketAction
		changes []domain.TicketHistory
	)
	if input.Status != nil {
		action, err = domain.TransitionTo(ticket.Status, *input.Status, agent.Role)
		if err != nil {
			return nil, transitionError(err)
		}
		if action != "" {
			ticket.Status = *input.Status
			changes = append(changes, historyEntry(ticket.ID, agent.ID, domain.ChangeTypeStatus, "status", oldStatus, ticket.Status))
		}
	}
	if input.Priority != nil && *input.Priority != ticket.Priority {
		changes = append(changes, historyEntry(ticket.ID, agent.ID, domain.ChangeTypePriority, "priority", ticket.Priority, *input.Priority))
		ticket.Priority = *input.Priority
	}
	if len(changes) == 0 {
		return ticket, nil
	}

	if err := s.save(ctx, ticket, changes); err != nil {
		return nil, err
	}
	if action != "" {
		s.publishStatusChange(ctx, ticket, agent.ID, oldStatus, action)
	}
	return ticket, nil
}

// AddCommunication appends a message. A citizen reply on a ticket waiting for
// the citizen hands it back to the agent in the same transaction.
func (s *TicketService) AddCommunication(ctx context.Context, ticketID string, input CommunicationInput, sender *domain.User) (*domain.Communication, error) {
	ticket, err := s.GetTicket(ctx, ticketID, sender)
	if err != nil {
		return nil, err
	}
	if input.IsInternal && sender.Role == domain.RoleCitizen {
		return nil, apperrors.NewForbidden("citizens cannot post internal communications")
	}

	msg := &domain.Communication{
		TicketID:   ticket.ID,
		SenderID:   &sender.ID,
		Message:    strings.TrimSpace(input.Message),
		IsInternal: input.IsInternal,
	}
	oldStatus := ticket.Status
	var action domain.TicketAction

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.communications.Create(ctx, msg); err != nil {
			return err
		}
		if sender.Role != domain.RoleCitizen || ticket.Status != domain.TicketStatusInProgressPendingCitizen {
			return nil
		}
		next, err := domain.Transition(ticket.Status, domain.ActionCitizenReply, sender.Role)
		if err != nil {
			return err
		}
		ticket.Status = next
		action = domain.ActionCitizenReply
		if err := s.tickets.Update(ctx, ticket); err != nil {
			return err
		}
		entry := historyEntry(ticket.ID, sender.ID, domain.ChangeTypeStatus, "status", oldStatus, next)
		return s.history.Create(ctx, &entry)
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if action != "" {
		s.publishStatusChange(ctx, ticket, sender.ID, oldStatus, action)
	}
	return msg, nil
}

// ListCommunications returns the thread oldest first. Citizens never see internal notes.
func (s *TicketService) ListCommunications(ctx context.Context, ticketID string, user *domain.User) ([]domain.Communication, error) {
	ticket, err := s.GetTicket(ctx, ticketID, user)
	if err != nil {
		return nil, err
	}
	msgs, err := s.communications.ListByTicket(ctx, ticket.ID, user.Role != domain.RoleCitizen)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return msgs, nil
}

// GetTicketHistory returns the audit trail to staff and admins.
func (s *TicketService) GetTicketHistory(ctx context.Context, ticketID string, user *domain.User) ([]domain.TicketHistory, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	if user.Role == domain.RoleCitizen {
		return nil, apperrors.NewForbidden("ticket history is available to staff only")
	}
	ticket, err := s.GetTicket(ctx, ticketID, user)
	if err != nil {
		return nil, err
	}
	entries, err := s.history.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

// route picks the agency for a new ticket: an active routing rule wins,
// otherwise the suggester may propose one.
func (s *TicketService) route(ctx context.Context, ticket *domain.Ticket, category *domain.Category) (*string, error) {
	if category != nil {
		rule, err := s.routing.ActiveRuleForCategory(ctx, category.ID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if rule != nil {
			return &rule.AssignedAgencyID, nil
		}
	}
	if s.suggester == nil {
		return nil, nil
	}
	return s.suggestAgency(ctx, ticket, category), nil
}

// suggestAgency never fails: any problem means no suggestion.
func (s *TicketService) suggestAgency(ctx context.Context, ticket *domain.Ticket, category *domain.Category) *string {
	log := s.logger.With(zap.String("title", ticket.Title))

	agencies, err := s.agencies.ListActive(ctx)
	if err != nil {
		log.Warn("agency suggestion skipped", zap.Error(err))
		return nil
	}
	if len(agencies) == 0 {
		return nil
	}

	req := ai.Request{
		Title:       ticket.Title,
		Description: ticket.DetailedDescription,
		Location:    ticket.Location,
	}
	if category != nil {
		req.Category = category.Name
	}
	names := make(map[string]string, len(agencies))
	for _, a := range agencies {
		names[a.ID] = a.Name
		req.Agencies = append(req.Agencies, ai.AgencyOption{ID: a.ID, Name: a.Name, Description: a.Description})
	}
	req.Rules = s.routingHints(ctx, names)

	id, err := s.suggester.SuggestAgency(ctx, req)
	if err != nil {
		if errors.Is(err, ai.ErrNoSuggestion) {
			log.Debug("no agency suggested")
		} else {
			log.Warn("agency suggestion failed", zap.Error(err))
		}
		return nil
	}
	if _, ok := names[id]; !ok {
		log.Warn("suggested agency is not active", zap.String("agency_id", id))
		return nil
	}
	log.Info("agency suggested", zap.String("agency_id", id))
	return &id
}

// routingHints describes the active rules by name for the suggester.
func (s *TicketService) routingHints(ctx context.Context, agencyNames map[string]string) []ai.RoutingHint {
	active := domain.RoutingRuleStatusActive
	rules, _, err := s.rules.List(ctx, repository.RoutingRuleFilter{Status: &active}, domain.PageRequest{Page: 1}, domain.Sort{})
	if err != nil || len(rules) == 0 {
		return nil
	}
	categories, _, err := s.categories.List(ctx, repository.CategoryFilter{}, domain.PageRequest{Page: 1}, domain.Sort{})
	if err != nil {
		return nil
	}
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	hints := make([]ai.RoutingHint, 0, len(rules))
	for _, r := range rules {
		agency, ok := agencyNames[r.AssignedAgencyID]
		if !ok {
			continue
		}
		hints = append(hints, ai.RoutingHint{Category: categoryNames[r.CategoryID], Agency: agency})
	}
	return hints
}

// ticketForStaff loads a ticket the actor may work on: admins any, staff their agency's.
func (s *TicketService) ticketForStaff(ctx context.Context, id string, actor *domain.User) (*domain.Ticket, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleCitizen {
		return nil, apperrors.NewForbidden("agency staff or admin role required")
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "ticket", id)
	}
	if actor.Role != domain.RoleAdmin && !ticket.HandledBy(actor.AgencyID) {
		return nil, apperrors.NewForbidden("ticket is not assigned to your agency")
	}
	return ticket, nil
}

// save writes the ticket and its history entries atomically.
func (s *TicketService) save(ctx context.Context, ticket *domain.Ticket, changes []domain.TicketHistory) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.tickets.Update(ctx, ticket); err != nil {
			return err
		}
		for i := range changes {
			if err := s.history.Create(ctx, &changes[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return notFoundOr(err, "ticket", ticket.ID)
	}
	return nil
}

func (s *TicketService) publishStatusChange(ctx context.Context, ticket *domain.Ticket, actorID string, oldStatus domain.TicketStatus, action domain.TicketAction) {
	s.publish(ctx, events.New(events.EventTicketStatusChanged, ticket.ID, &actorID, events.TicketStatusChangedPayload{
		Title:            ticket.Title,
		CitizenID:        ticket.CitizenID,
		AnonymousContact: ticket.AnonymousCreatorContact,
		OldStatus:        oldStatus,
		NewStatus:        ticket.Status,
		Action:           action,
	}))
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(ctx, event)
}

func canAccessTicket(user *domain.User, ticket *domain.Ticket) bool {
	switch user.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleAgencyStaff:
		return ticket.HandledBy(user.AgencyID)
	case domain.RoleCitizen:
		return ticket.OwnedBy(user.ID)
	}
	return false
}

func transitionError(err error) error {
	return apperrors.NewConflict("invalid status transition", map[string]any{"reason": err.Error()})
}

func historyEntry(ticketID, actorID string, changeType domain.TicketChangeType, key string, oldValue, newValue any) domain.TicketHistory {
	return domain.TicketHistory{
		TicketID:    ticketID,
		ChangedByID: &actorID,
		ChangeType:  changeType,
		OldValue:    map[string]any{key: oldValue},
		NewValue:    map[string]any{key: newValue},
	}
}

// idValue flattens an optional id for history payloads.
func idValue(id *string) any {
	if id == nil {
		return nil
	}
	return *id
}
