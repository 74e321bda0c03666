package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"finance-insights-be/internal/constant"
	"finance-insights-be/internal/dto"
	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/repository/specification"
	"finance-insights-be/internal/repository/unitofwork"
	"finance-insights-be/pkg/embedding"
	"finance-insights-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService indexes uploaded documents into the retrieval corpus in
// the background: chunk the extracted text, embed each chunk, store the
// vectors. Corpus-wide questions then cover uploads too.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexDocumentMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Indexing document %s", payload.DocumentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to get document %s: %v", payload.DocumentId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if doc == nil {
		log.Printf("[ERROR] Document not found: %s", payload.DocumentId)
		msg.Ack() // Deleted before indexing? Ack.
		return
	}

	// ChunkSize: 1500 chars with 200 overlap keeps each chunk well inside
	// the embedding model's input limit.
	chunks := utils.SplitText(doc.Text, 1500, 200)
	log.Printf("[INFO] Document %s split into %d chunks", doc.Filename, len(chunks))

	articles := make([]*entity.NewsArticle, 0, len(chunks))
	embeddings := make([][]float32, 0, len(chunks))

	for i, chunk := range chunks {
		vector, err := cs.embeddingProvider.Generate(ctx, chunk)
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d of document %s: %v", i, doc.Filename, err)
			msg.Nack()
			return
		}

		articles = append(articles, &entity.NewsArticle{
			Id:              uuid.New(),
			Title:           fmt.Sprintf("%s (part %d)", doc.Filename, i+1),
			Source:          doc.Filename,
			Region:          constant.RegionGlobal,
			Date:            doc.UploadDate.Format("2006-01-02"),
			DetailedSummary: chunk,
			CreatedAt:       time.Now(),
		})
		embeddings = append(embeddings, vector)
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if len(articles) > 0 {
		if err := uow.NewsEmbeddingRepository().CreateBulk(ctx, articles, embeddings); err != nil {
			log.Printf("[ERROR] Failed to store embeddings: %v", err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Document indexed: %d chunks for %s", len(articles), doc.Filename)
	msg.Ack()
}
