package commands

import (
	"errors"

	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var ErrPostOrderCommandIsNotConstructed = errors.New(
	"PostOrderCommand must be created via NewPostOrderCommand constructor",
)

// PostOrderCommand stores a freight document and creates its order in the
// Requested state. The order is owned by the actor's company sender role
// when the actor belongs to a company, otherwise by the actor's own.
type PostOrderCommand struct {
	actor        services.Actor
	documentKind document.Kind
	documentName string
	content      []byte

	guard guard.ConstructorGuard
}

// NewPostOrderCommand creates a command to post an order with its document.
func NewPostOrderCommand(
	actor services.Actor,
	documentKind document.Kind,
	documentName string,
	content []byte,
) (PostOrderCommand, error) {
	if err := documentKind.Validate(); err != nil {
		return PostOrderCommand{}, err
	}

	return PostOrderCommand{
		actor:        actor,
		documentKind: documentKind,
		documentName: documentName,
		content:      content,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Actor returns the acting identity.
func (c *PostOrderCommand) Actor() services.Actor {
	return c.actor
}

// DocumentKind returns the payload format of the document to store.
func (c *PostOrderCommand) DocumentKind() document.Kind {
	return c.documentKind
}

// DocumentName returns the display file name of the document.
func (c *PostOrderCommand) DocumentName() string {
	return c.documentName
}

// Content returns the document payload.
func (c *PostOrderCommand) Content() []byte {
	return c.content
}

// Validate ensures the command was created through the constructor.
func (c *PostOrderCommand) Validate() error {
	return c.guard.Validate(ErrPostOrderCommandIsNotConstructed)
}
