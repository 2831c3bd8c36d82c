package repository

import (
	"context"

	"PromoPilot/entity"
)

// SaveChatMessage appends one dialog feed entry.
func (m *MongoDB) SaveChatMessage(ctx context.Context, msg entity.ChatMessage) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatMessagesCollection)

	_, err = collection.InsertOne(ctx, msg)
	return err
}
