package services

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/soaringjerry/messageservice/internal/catalog"
)

// MessageStore is the table the service reads and writes.
type MessageStore interface {
	Get(code string) (catalog.Message, bool)
	GetAll() map[string]catalog.Message
	Upsert(msg *catalog.Message) error
	Remove(code string) (catalog.Message, bool)
	Len() int
}

var _ MessageStore = (*catalog.Store)(nil)

type MessageService struct {
	store    MessageStore
	log      *slog.Logger
	validate *validator.Validate
}

func NewMessageService(store MessageStore, log *slog.Logger) *MessageService {
	if log == nil {
		log = slog.Default()
	}
	return &MessageService{
		store:    store,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *MessageService) Get(code string) (*catalog.Message, error) {
	m, ok := s.store.Get(code)
	if !ok {
		return nil, NewNotFoundError("message not found")
	}
	return &m, nil
}

func (s *MessageService) List() map[string]catalog.Message {
	return s.store.GetAll()
}

// Upsert stores msg under code. The code argument always wins over msg.Code;
// a caller sending a body for one code to another code's path rewrites it.
func (s *MessageService) Upsert(code string, msg *catalog.Message) (*catalog.Message, error) {
	if msg == nil {
		return nil, NewInvalidError("message body required")
	}
	m := *msg
	if m.Code != "" && m.Code != code {
		s.log.Debug("body code overridden by path", "path_code", code, "body_code", m.Code)
	}
	m.Code = code
	if err := s.validate.Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, NewInvalidError("code required")
		}
		return nil, wrapInvalid(err)
	}
	if err := s.store.Upsert(&m); err != nil {
		if errors.Is(err, catalog.ErrInvalidArgument) {
			return nil, wrapInvalid(err)
		}
		return nil, err
	}
	s.log.Info("message upserted", "code", m.Code)
	return &m, nil
}

func (s *MessageService) Remove(code string) (*catalog.Message, error) {
	m, ok := s.store.Remove(code)
	if !ok {
		return nil, NewNotFoundError("message not found")
	}
	s.log.Info("message removed", "code", code)
	return &m, nil
}

func (s *MessageService) Count() int {
	return s.store.Len()
}
