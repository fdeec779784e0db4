package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"threadbase.app/comments/common/id"
	"threadbase.app/comments/internal/bus"
	"threadbase.app/comments/internal/model"
	"threadbase.app/comments/internal/pagination"
	"threadbase.app/comments/internal/service"
	"threadbase.app/comments/internal/store"
)

var _ = Describe("NotificationService", func() {
	var (
		svc       service.NotificationService
		mockStore *mockNotificationStore
		ctx       context.Context
	)

	BeforeEach(func() {
		Expect(id.Init(1)).To(Succeed())
		ctx = context.Background()
		mockStore = &mockNotificationStore{}
		svc = service.NewNotificationService(mockStore, &mockBus{})
	})

	Describe("Create", func() {
		It("rejects incomplete params", func() {
			_, err := svc.Create(ctx, service.CreateNotificationParams{
				Type:  model.EventCommentCreated,
				Title: "Comment Created",
				// Message and RecipientID missing
			})

			Expect(err).To(MatchError(service.ErrInvalidArgument))
		})

		It("passes the metadata bag through to the store", func() {
			var captured map[string]any
			mockStore.createFn = func(_ context.Context, typ model.EventType, title, message, recipientID string, metadata map[string]any) (*model.Notification, error) {
				captured = metadata
				return &model.Notification{ID: "n1", Type: typ, Title: title, Message: message, RecipientID: recipientID, Metadata: metadata}, nil
			}

			n, err := svc.Create(ctx, service.CreateNotificationParams{
				Type:        model.EventCommentCreated,
				Title:       "Comment Created",
				Message:     "Your comment was created successfully",
				RecipientID: "user-a",
				Metadata:    map[string]any{"comment_id": "c1"},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(n.ID).To(Equal("n1"))
			Expect(captured).To(HaveKeyWithValue("comment_id", "c1"))
		})
	})

	Describe("GetByID", func() {
		It("translates store absence to the service sentinel", func() {
			mockStore.getByIDFn = func(_ context.Context, _ string) (*model.Notification, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.GetByID(ctx, "missing")

			Expect(err).To(MatchError(service.ErrNotificationNotFound))
			Expect(err.Error()).To(ContainSubstring("missing"))
		})
	})

	Describe("MarkRead", func() {
		It("translates store absence to the service sentinel", func() {
			mockStore.markReadFn = func(_ context.Context, _ string) (*model.Notification, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.MarkRead(ctx, "missing")

			Expect(err).To(MatchError(service.ErrNotificationNotFound))
		})
	})

	Describe("Delete", func() {
		It("checks existence before removing", func() {
			mockStore.getByIDFn = func(_ context.Context, _ string) (*model.Notification, error) {
				return nil, store.ErrNotFound
			}
			removed := false
			mockStore.deleteFn = func(_ context.Context, _ string) (bool, error) {
				removed = true
				return false, nil
			}

			err := svc.Delete(ctx, "missing")

			Expect(err).To(MatchError(service.ErrNotificationNotFound))
			Expect(removed).To(BeFalse())
		})

		It("removes an existing notification", func() {
			mockStore.getByIDFn = func(_ context.Context, notificationID string) (*model.Notification, error) {
				return &model.Notification{ID: notificationID}, nil
			}

			Expect(svc.Delete(ctx, "n1")).To(Succeed())
		})
	})

	Describe("List", func() {
		It("delegates with the recipient scope", func() {
			mockStore.listFn = func(_ context.Context, recipientID string, _ model.ListOptions) (*pagination.Result[model.Notification], error) {
				Expect(recipientID).To(Equal("user-a"))
				return &pagination.Result[model.Notification]{
					Items: []model.Notification{{ID: "n1", RecipientID: recipientID}},
					Meta:  pagination.Meta{Total: 1, Page: 1, Limit: 10, TotalPages: 1},
				}, nil
			}

			res, err := svc.List(ctx, "user-a", model.ListOptions{})

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Items).To(HaveLen(1))
		})
	})
})

// The event-driven path runs against real stores and a real bus: comment
// mutations must produce notifications without the caller waiting for
// them.
var _ = Describe("Notification flow", func() {
	var (
		stores   *store.Stores
		comments service.CommentService
		notifs   service.NotificationService
		ctx      context.Context
	)

	BeforeEach(func() {
		Expect(id.Init(1)).To(Succeed())
		ctx = context.Background()
		stores = store.NewStores()
		events := bus.New(nil)
		comments = service.NewCommentService(stores.Comments(), events)
		notifs = service.NewNotificationService(stores.Notifications(), events)
	})

	AfterEach(func() {
		notifs.Close()
	})

	recipientTitles := func(recipientID string) func() []string {
		return func() []string {
			res, err := notifs.List(ctx, recipientID, model.ListOptions{})
			Expect(err).NotTo(HaveOccurred())
			titles := make([]string, 0, len(res.Items))
			for _, n := range res.Items {
				titles = append(titles, n.Title)
			}
			return titles
		}
	}

	It("notifies the author when a comment is created", func() {
		_, err := comments.Create(ctx, "Hi", "user-a", nil)
		Expect(err).NotTo(HaveOccurred())

		Eventually(recipientTitles("user-a")).Should(ConsistOf("Comment Created"))

		res, err := notifs.List(ctx, "user-a", model.ListOptions{})
		Expect(err).NotTo(HaveOccurred())
		n := res.Items[0]
		Expect(n.Message).To(Equal("Your comment was created successfully"))
		Expect(n.Read).To(BeFalse())
		Expect(n.Metadata).To(HaveKey("comment_id"))
	})

	It("notifies the parent's author, not the replier, on replies", func() {
		root, err := comments.Create(ctx, "Hi", "user-a", nil)
		Expect(err).NotTo(HaveOccurred())
		Eventually(recipientTitles("user-a")).Should(HaveLen(1))

		reply, err := comments.CreateReply(ctx, root.ID, "Hey", "user-b")
		Expect(err).NotTo(HaveOccurred())

		Eventually(recipientTitles("user-a")).Should(ConsistOf("Comment Created", "New Reply"))
		Consistently(recipientTitles("user-b")).Should(BeEmpty())

		res, err := notifs.List(ctx, "user-a", model.ListOptions{Order: model.SortDesc})
		Expect(err).NotTo(HaveOccurred())
		for _, n := range res.Items {
			if n.Title != "New Reply" {
				continue
			}
			Expect(n.Message).To(Equal("Someone replied to your comment"))
			Expect(n.Metadata).To(HaveKeyWithValue("comment_id", reply.ID))
			Expect(n.Metadata).To(HaveKeyWithValue("parent_id", root.ID))
			Expect(n.Metadata).To(HaveKeyWithValue("reply_author_id", "user-b"))
		}
	})

	It("notifies on update and delete", func() {
		c, err := comments.Create(ctx, "Hi", "user-a", nil)
		Expect(err).NotTo(HaveOccurred())
		Eventually(recipientTitles("user-a")).Should(HaveLen(1))

		_, err = comments.Update(ctx, c.ID, "Hi, edited")
		Expect(err).NotTo(HaveOccurred())
		Eventually(recipientTitles("user-a")).Should(ConsistOf("Comment Created", "Comment Updated"))

		Expect(comments.Delete(ctx, c.ID)).To(Succeed())
		Eventually(recipientTitles("user-a")).Should(ConsistOf("Comment Created", "Comment Updated", "Comment Deleted"))
	})

	It("stops notifying after Close", func() {
		notifs.Close()

		_, err := comments.Create(ctx, "Hi", "user-a", nil)
		Expect(err).NotTo(HaveOccurred())

		Consistently(recipientTitles("user-a")).Should(BeEmpty())
	})

	It("keeps the unread count per recipient", func() {
		root, err := comments.Create(ctx, "Hi", "user-a", nil)
		Expect(err).NotTo(HaveOccurred())
		_, err = comments.CreateReply(ctx, root.ID, "Hey", "user-b")
		Expect(err).NotTo(HaveOccurred())

		unreadOf := func(recipientID string) func() int {
			return func() int {
				count, err := notifs.UnreadCount(ctx, recipientID)
				Expect(err).NotTo(HaveOccurred())
				return count
			}
		}
		Eventually(unreadOf("user-a")).Should(Equal(2))

		updated, err := notifs.MarkAllRead(ctx, "user-a")
		Expect(err).NotTo(HaveOccurred())
		Expect(updated).To(Equal(2))
		Expect(unreadOf("user-a")()).To(BeZero())
	})
})
