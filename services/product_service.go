package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nassimidr/Emall/apperrors"
	"github.com/nassimidr/Emall/models"
	"github.com/nassimidr/Emall/repository"
	"github.com/nassimidr/Emall/sender"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ProductService handles catalog operations on products, including the
// restock notification flow triggered by updates.
type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	ListByShop(ctx context.Context, shopID string) ([]models.Product, error)
	Create(ctx context.Context, fields bson.M) (*models.Product, error)
	Update(ctx context.Context, id string, updates bson.M) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	Subscribe(ctx context.Context, id, email string) error
	Notifications(ctx context.Context, id string) ([]models.NotificationLog, error)
}

type productService struct {
	products      repository.ProductRepository
	shops         repository.ShopRepository
	notifications repository.NotificationRepository
	mailer        sender.EmailSender
	defaultFrom   string
}

func NewProductService(
	products repository.ProductRepository,
	shops repository.ShopRepository,
	notifications repository.NotificationRepository,
	mailer sender.EmailSender,
	defaultFrom string,
) ProductService {
	return &productService{
		products:      products,
		shops:         shops,
		notifications: notifications,
		mailer:        mailer,
		defaultFrom:   defaultFrom,
	}
}

func (s *productService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, apperrors.ErrServerFault.Wrap(err)
	}
	return products, nil
}

func (s *productService) Get(ctx context.Context, id string) (*models.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrValidation.WithMessage("Invalid product ID")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound.WithMessage("Product not found")
		}
		return nil, apperrors.ErrServerFault.Wrap(err)
	}
	return product, nil
}

func (s *productService) ListByShop(ctx context.Context, shopID string) ([]models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(shopID); err != nil {
		return nil, apperrors.ErrValidation.WithMessage("Invalid shop ID")
	}

	products, err := s.products.FindByShop(ctx, shopID)
	if err != nil {
		return nil, apperrors.ErrServerFault.Wrap(err)
	}
	return products, nil
}

func (s *productService) Create(ctx context.Context, fields bson.M) (*models.Product, error) {
	if name, ok := fields["name"].(string); !ok || name == "" {
		return nil, apperrors.ErrValidation.WithMessage("Product name is required")
	}
	if !hasNumber(fields, "price") {
		return nil, apperrors.ErrValidation.WithMessage("Product price is required")
	}

	// shopId is a loose reference, but when present it must name a real shop.
	if shopID, ok := fields["shopId"].(string); ok && shopID != "" {
		sid, err := primitive.ObjectIDFromHex(shopID)
		if err != nil {
			return nil, apperrors.ErrValidation.WithMessage("Invalid shop ID")
		}
		if _, err := s.shops.FindByID(ctx, sid); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, apperrors.ErrValidation.WithMessage("Shop not found")
			}
			return nil, apperrors.ErrServerFault.Wrap(err)
		}
	}

	delete(fields, "_id")
	if _, ok := fields["inStock"]; !ok {
		fields["inStock"] = true
	}
	if _, ok := fields["notifyEmails"]; !ok {
		fields["notifyEmails"] = []string{}
	}
	now := time.Now().UTC()
	fields["createdAt"] = now
	fields["updatedAt"] = now

	product, err := decodeProduct(fields)
	if err != nil {
		return nil, apperrors.ErrValidation.Wrap(err)
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.ErrServerFault.Wrap(err)
	}
	return product, nil
}

// Update merges the incoming fields onto the product. Flipping inStock
// from false to true is the trigger for the restock notification flow.
func (s *productService) Update(ctx context.Context, id string, updates bson.M) (*models.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrValidation.WithMessage("Invalid product ID")
	}

	delete(updates, "_id")
	delete(updates, "createdAt")
	if len(updates) == 0 {
		return nil, apperrors.ErrValidation.WithMessage("No update fields provided")
	}

	current, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound.WithMessage("Product not found")
		}
		return nil, apperrors.ErrServerFault.Wrap(err)
	}
	wasOutOfStock := !current.InStock

	updated, err := s.products.Update(ctx, productID, updates)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound.WithMessage("Product not found")
		}
		return nil, apperrors.ErrServerFault.Wrap(err)
	}

	// Only the false→true edge notifies; true→true and false→false never do.
	if wasOutOfStock && updated.InStock && len(updated.NotifyEmails) > 0 {
		emails, err := s.products.DrainNotifyEmails(ctx, productID)
		if err != nil {
			// The store kept the waitlist, so the response keeps it too.
			zap.L().Error("Failed to drain restock waitlist",
				zap.String("product_id", id), zap.Error(err))
		} else {
			if len(emails) > 0 {
				s.notifyRestock(ctx, updated, emails)
			}
			updated.NotifyEmails = []string{}
		}
	}

	return updated, nil
}

// notifyRestock sends one best-effort mail per waitlisted address. A
// failure for one address never aborts the loop, and every attempt is
// recorded.
func (s *productService) notifyRestock(ctx context.Context, product *models.Product, emails []string) {
	from := s.resolveFromAddress(ctx, product)
	subject := "Your product is back in stock!"
	body := fmt.Sprintf(
		"Hello,\n\nThe product %q is available again on our store! Visit the site to order it.\n\nThis is an automated message.",
		product.Name,
	)

	for _, to := range emails {
		var sendErr error
		if s.mailer == nil {
			sendErr = errors.New("mail transport not configured")
		} else {
			_, sendErr = s.mailer.SendEmail(ctx, from, to, subject, body)
		}

		status := models.StatusSent
		errMsg := ""
		if sendErr != nil {
			status = models.StatusFailed
			errMsg = sendErr.Error()
			zap.L().Warn("Restock notification failed",
				zap.String("product_id", product.ID.Hex()),
				zap.String("recipient", to),
				zap.Error(sendErr),
			)
		} else {
			zap.L().Info("Restock notification sent",
				zap.String("product_id", product.ID.Hex()),
				zap.String("recipient", to),
			)
		}

		logEntry := &models.NotificationLog{
			ProductID: product.ID,
			Recipient: to,
			Channel:   models.ChannelEmail,
			Status:    status,
			Error:     errMsg,
		}
		if err := s.notifications.SaveLog(ctx, logEntry); err != nil {
			zap.L().Error("Failed to save notification log", zap.Error(err))
		}
	}
}

// resolveFromAddress prefers the owning shop's email, falling back to the
// configured default sender.
func (s *productService) resolveFromAddress(ctx context.Context, product *models.Product) string {
	if product.ShopID == "" {
		return s.defaultFrom
	}
	shopID, err := primitive.ObjectIDFromHex(product.ShopID)
	if err != nil {
		return s.defaultFrom
	}
	shop, err := s.shops.FindByID(ctx, shopID)
	if err != nil || shop.Email == "" {
		return s.defaultFrom
	}
	return shop.Email
}

func (s *productService) Delete(ctx context.Context, id string) error {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrValidation.WithMessage("Invalid product ID")
	}

	count, err := s.products.Delete(ctx, productID)
	if err != nil {
		return apperrors.ErrServerFault.Wrap(err)
	}
	if count == 0 {
		return apperrors.ErrNotFound.WithMessage("Product not found")
	}
	return nil
}

// Subscribe appends an email to the product's restock waitlist. The append
// is idempotent; subscribing twice leaves a single entry.
func (s *productService) Subscribe(ctx context.Context, id, email string) error {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrValidation.WithMessage("Invalid product ID")
	}

	if err := s.products.AddNotifyEmail(ctx, productID, email); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.ErrNotFound.WithMessage("Product not found")
		}
		return apperrors.ErrServerFault.Wrap(err)
	}
	return nil
}

// Notifications lists the product's restock send attempts, newest first.
func (s *productService) Notifications(ctx context.Context, id string) ([]models.NotificationLog, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrValidation.WithMessage("Invalid product ID")
	}

	logs, err := s.notifications.FindByProduct(ctx, productID)
	if err != nil {
		return nil, apperrors.ErrServerFault.Wrap(err)
	}
	return logs, nil
}

func hasNumber(fields bson.M, key string) bool {
	switch fields[key].(type) {
	case float64, float32, int, int32, int64:
		return true
	default:
		return false
	}
}

func decodeProduct(fields bson.M) (*models.Product, error) {
	data, err := bson.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var product models.Product
	if err := bson.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
