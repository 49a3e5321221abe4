package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"coffeecheckin/internal/domain/checkins"
	"coffeecheckin/internal/domain/coffeeshops"
	"coffeecheckin/internal/domain/menu"
	"coffeecheckin/internal/domain/reviews"
	"coffeecheckin/internal/domain/storage"
	"coffeecheckin/internal/domain/users"
	"coffeecheckin/internal/overpass"
)

// memDB backs the in-memory stores used by handler tests.
type memDB struct {
	mu       sync.Mutex
	nextID   int64
	clock    time.Time
	users    []*users.User
	shops    []*coffeeshops.CoffeeShop
	checkIns []*checkins.CheckIn
	reviews  []*reviews.Review
	menu     []*menu.MenuItem
}

func newMemDB() *memDB {
	return &memDB{clock: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *memDB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

func (db *memDB) container() *storage.Container {
	return &storage.Container{
		Users:       &fakeUsers{db},
		CoffeeShops: &fakeShops{db},
		CheckIns:    &fakeCheckIns{db},
		Reviews:     &fakeReviews{db},
		Menu:        &fakeMenu{db},
	}
}

func (db *memDB) userByID(id int64) *users.User {
	for _, u := range db.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (db *memDB) shopByRef(ref coffeeshops.Ref) *coffeeshops.CoffeeShop {
	for _, s := range db.shops {
		if (ref.ByExternal && s.ExternalID == ref.ExternalID) || (!ref.ByExternal && s.ID == ref.ID) {
			return s
		}
	}
	return nil
}

func (db *memDB) checkInByID(id int64) *checkins.CheckIn {
	for _, c := range db.checkIns {
		if c.ID == id {
			return c
		}
	}
	return nil
}

type fakeUsers struct{ db *memDB }

func (f *fakeUsers) Create(_ context.Context, u *users.User) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	for _, existing := range f.db.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return users.ErrDuplicateEmail
		}
		if existing.Username == u.Username {
			return users.ErrDuplicateUsername
		}
	}
	u.ID = f.db.id()
	u.CreatedAt = f.db.tick()
	if u.ThemeColor == "" {
		u.ThemeColor = users.DefaultThemeColor
	}
	f.db.users = append(f.db.users, u)
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*users.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	if u := f.db.userByID(id); u != nil {
		return u, nil
	}
	return nil, users.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*users.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	for _, u := range f.db.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, users.ErrNotFound
}

func (f *fakeUsers) GetProfile(_ context.Context, id int64) (*users.Profile, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	u := f.db.userByID(id)
	if u == nil {
		return nil, users.ErrNotFound
	}
	p := &users.Profile{
		ID:                u.ID,
		Username:          u.Username,
		Bio:               u.Bio,
		ProfilePictureURL: u.ProfilePictureURL,
		ThemeColor:        u.ThemeColor,
		InstagramHandle:   u.InstagramHandle,
		CreatedAt:         u.CreatedAt,
	}
	for _, c := range f.db.checkIns {
		if c.UserID == id {
			p.TotalCheckIns++
		}
	}
	for _, r := range f.db.reviews {
		if r.UserID == id {
			p.TotalReviews++
		}
	}
	return p, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id int64, update users.ProfileUpdate) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	u := f.db.userByID(id)
	if u == nil {
		return users.ErrNotFound
	}
	if update.Bio != nil {
		u.Bio = update.Bio
	}
	if update.ProfilePictureURL != nil {
		u.ProfilePictureURL = update.ProfilePictureURL
	}
	if update.ThemeColor != nil {
		u.ThemeColor = *update.ThemeColor
	}
	if update.InstagramHandle != nil {
		u.InstagramHandle = update.InstagramHandle
	}
	return nil
}

func (f *fakeUsers) SetProfilePicture(ctx context.Context, id int64, url string) error {
	return f.UpdateProfile(ctx, id, users.ProfileUpdate{ProfilePictureURL: &url})
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	for i, u := range f.db.users {
		if u.ID == id {
			f.db.users = append(f.db.users[:i], f.db.users[i+1:]...)
			return nil
		}
	}
	return users.ErrNotFound
}

func (f *fakeUsers) Count(context.Context) (int, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return len(f.db.users), nil
}

type fakeShops struct{ db *memDB }

func (f *fakeShops) FindOrCreateByExternalID(_ context.Context, externalID int64, name string, lat, lng float64, address *string) (*coffeeshops.CoffeeShop, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	if s := f.db.shopByRef(coffeeshops.ByExternalID(externalID)); s != nil {
		cp := *s
		return &cp, nil
	}
	if coffeeshops.IsUserShop(externalID) {
		return nil, coffeeshops.ErrNotFound
	}
	s := &coffeeshops.CoffeeShop{
		ID:         f.db.id(),
		ExternalID: externalID,
		Name:       name,
		Latitude:   lat,
		Longitude:  lng,
		Address:    address,
		CachedAt:   f.db.tick(),
	}
	f.db.shops = append(f.db.shops, s)
	cp := *s
	return &cp, nil
}

func (f *fakeShops) AddUserShop(_ context.Context, name string, lat, lng float64, address *string, ownerID int64) (*coffeeshops.CoffeeShop, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	for _, s := range f.db.shops {
		if coffeeshops.SameNameAndAddress(*s, name, address) {
			return nil, coffeeshops.ErrDuplicateShop
		}
	}
	owner := ownerID
	s := &coffeeshops.CoffeeShop{
		ID:        f.db.id(),
		Name:      name,
		Latitude:  lat,
		Longitude: lng,
		Address:   address,
		CachedAt:  f.db.tick(),
		OwnerID:   &owner,
		IsClaimed: true,
	}
	s.ExternalID = coffeeshops.UserShopExternalID(s.CachedAt) - s.ID
	f.db.shops = append(f.db.shops, s)
	cp := *s
	return &cp, nil
}

func (f *fakeShops) Claim(_ context.Context, ref coffeeshops.Ref, userID int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	s := f.db.shopByRef(ref)
	if s == nil {
		return coffeeshops.ErrNotFound
	}
	if s.IsClaimed {
		return coffeeshops.ErrAlreadyClaimed
	}
	owner := userID
	s.OwnerID = &owner
	s.IsClaimed = true
	return nil
}

func (f *fakeShops) Get(_ context.Context, ref coffeeshops.Ref) (*coffeeshops.CoffeeShop, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	if s := f.db.shopByRef(ref); s != nil {
		cp := *s
		return &cp, nil
	}
	return nil, coffeeshops.ErrNotFound
}

func (f *fakeShops) ListAll(context.Context) ([]coffeeshops.CoffeeShop, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	out := []coffeeshops.CoffeeShop{}
	for _, s := range f.db.shops {
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeShops) ListByOwner(_ context.Context, ownerID int64) ([]coffeeshops.CoffeeShop, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	out := []coffeeshops.CoffeeShop{}
	for _, s := range f.db.shops {
		if s.OwnerID != nil && *s.OwnerID == ownerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeShops) Count(context.Context) (int, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return len(f.db.shops), nil
}

type fakeCheckIns struct{ db *memDB }

func (f *fakeCheckIns) Create(_ context.Context, c *checkins.CheckIn) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	shop := f.db.shopByRef(coffeeshops.ByID(c.CoffeeShopID))
	if shop == nil {
		return coffeeshops.ErrNotFound
	}
	c.ID = f.db.id()
	c.CheckedInAt = f.db.tick()
	c.ShopName = shop.Name
	c.Reviews = []checkins.Review{}

	stored := *c
	f.db.checkIns = append(f.db.checkIns, &stored)
	return nil
}

func (f *fakeCheckIns) withReviews(c checkins.CheckIn) checkins.CheckIn {
	c.Reviews = []checkins.Review{}
	for i := len(f.db.reviews) - 1; i >= 0; i-- {
		r := f.db.reviews[i]
		if r.CheckInID == c.ID {
			c.Reviews = append(c.Reviews, checkins.Review{
				ID:          r.ID,
				CheckInID:   r.CheckInID,
				ProductName: r.ProductName,
				Rating:      r.Rating,
				Notes:       r.Notes,
				CreatedAt:   r.CreatedAt,
			})
		}
	}
	return c
}

func (f *fakeCheckIns) ListByUser(_ context.Context, userID int64) ([]checkins.CheckIn, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	out := []checkins.CheckIn{}
	for i := len(f.db.checkIns) - 1; i >= 0; i-- {
		if c := f.db.checkIns[i]; c.UserID == userID {
			out = append(out, f.withReviews(*c))
		}
	}
	return out, nil
}

func (f *fakeCheckIns) GetForUser(_ context.Context, id, userID int64) (*checkins.CheckIn, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	c := f.db.checkInByID(id)
	if c == nil || c.UserID != userID {
		return nil, checkins.ErrNotFound
	}
	out := f.withReviews(*c)
	return &out, nil
}

func (f *fakeCheckIns) Count(context.Context) (int, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return len(f.db.checkIns), nil
}

type fakeReviews struct{ db *memDB }

func (f *fakeReviews) Create(_ context.Context, r *reviews.Review) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	c := f.db.checkInByID(r.CheckInID)
	if c == nil {
		return checkins.ErrNotFound
	}
	u := f.db.userByID(r.UserID)
	r.ID = f.db.id()
	r.CreatedAt = f.db.tick()
	r.Username = u.Username
	r.UserProfilePicture = u.ProfilePictureURL
	r.ShopID = c.CoffeeShopID
	r.ShopName = c.ShopName

	stored := *r
	f.db.reviews = append(f.db.reviews, &stored)
	return nil
}

// newestFirst returns reviews matching keep, newest first.
func (f *fakeReviews) newestFirst(keep func(*reviews.Review) bool) []reviews.Review {
	out := []reviews.Review{}
	for i := len(f.db.reviews) - 1; i >= 0; i-- {
		if r := f.db.reviews[i]; keep(r) {
			out = append(out, *r)
		}
	}
	return out
}

func (f *fakeReviews) ListByUser(_ context.Context, userID int64) ([]reviews.Review, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return f.newestFirst(func(r *reviews.Review) bool { return r.UserID == userID }), nil
}

func (f *fakeReviews) ListByShop(_ context.Context, ref coffeeshops.Ref) ([]reviews.Review, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	shop := f.db.shopByRef(ref)
	if shop == nil {
		return []reviews.Review{}, nil
	}
	return f.newestFirst(func(r *reviews.Review) bool { return r.ShopID == shop.ID }), nil
}

func (f *fakeReviews) ListFeed(_ context.Context, q reviews.FeedQuery) ([]reviews.Review, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	q = q.Normalize()
	all := f.newestFirst(func(*reviews.Review) bool { return true })
	if q.Sort == reviews.SortPlace {
		sort.SliceStable(all, func(i, j int) bool { return all[i].ShopName < all[j].ShopName })
	}
	if q.Offset >= len(all) {
		return []reviews.Review{}, nil
	}
	all = all[q.Offset:]
	if len(all) > q.Limit {
		all = all[:q.Limit]
	}
	return all, nil
}

func (f *fakeReviews) ListAll(context.Context) ([]reviews.Review, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return f.newestFirst(func(*reviews.Review) bool { return true }), nil
}

func (f *fakeReviews) Stats(context.Context) (*reviews.Stats, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	s := &reviews.Stats{
		TotalReviews:  len(f.db.reviews),
		TotalCheckIns: len(f.db.checkIns),
		TotalShops:    len(f.db.shops),
		TopProducts:   []reviews.ProductStat{},
	}
	if len(f.db.reviews) == 0 {
		return s, nil
	}

	sum := 0
	byProduct := map[string]*reviews.ProductStat{}
	sums := map[string]int{}
	for _, r := range f.db.reviews {
		sum += r.Rating
		p, ok := byProduct[r.ProductName]
		if !ok {
			p = &reviews.ProductStat{Product: r.ProductName}
			byProduct[r.ProductName] = p
		}
		p.Count++
		sums[r.ProductName] += r.Rating
	}
	s.AvgRating = reviews.RoundTenth(float64(sum) / float64(len(f.db.reviews)))
	for name, p := range byProduct {
		p.AvgRating = reviews.RoundTenth(float64(sums[name]) / float64(p.Count))
		s.TopProducts = append(s.TopProducts, *p)
	}
	sort.Slice(s.TopProducts, func(i, j int) bool {
		if s.TopProducts[i].Count != s.TopProducts[j].Count {
			return s.TopProducts[i].Count > s.TopProducts[j].Count
		}
		return s.TopProducts[i].Product < s.TopProducts[j].Product
	})
	if len(s.TopProducts) > reviews.TopProductsLimit {
		s.TopProducts = s.TopProducts[:reviews.TopProductsLimit]
	}
	return s, nil
}

type fakeMenu struct{ db *memDB }

func (f *fakeMenu) ListAvailableByShop(_ context.Context, shopID int64) ([]menu.MenuItem, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	out := []menu.MenuItem{}
	for _, m := range f.db.menu {
		if m.CoffeeShopID == shopID && m.IsAvailable {
			out = append(out, *m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *fakeMenu) Create(_ context.Context, m *menu.MenuItem) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	if m.Category == "" {
		m.Category = menu.DefaultCategory
	}
	m.ID = f.db.id()
	m.IsAvailable = true
	m.CreatedAt = f.db.tick()
	m.Price = menu.FormatCents(m.PriceCents)

	stored := *m
	f.db.menu = append(f.db.menu, &stored)
	return nil
}

func (f *fakeMenu) GetByID(_ context.Context, id int64) (*menu.MenuItem, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	for _, m := range f.db.menu {
		if m.ID == id {
			out := *m
			if shop := f.db.shopByRef(coffeeshops.ByID(m.CoffeeShopID)); shop != nil {
				out.ShopOwnerID = shop.OwnerID
			}
			return &out, nil
		}
	}
	return nil, menu.ErrNotFound
}

func (f *fakeMenu) Delete(_ context.Context, id int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	for i, m := range f.db.menu {
		if m.ID == id {
			f.db.menu = append(f.db.menu[:i], f.db.menu[i+1:]...)
			return nil
		}
	}
	return menu.ErrNotFound
}

type fakeFinder struct {
	mu     sync.Mutex
	shops  []overpass.Shop
	radius []int
}

func (f *fakeFinder) NearbyCoffeeShops(_ context.Context, _, _ float64, radius int) []overpass.Shop {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.radius = append(f.radius, radius)
	out := make([]overpass.Shop, len(f.shops))
	copy(out, f.shops)
	return out
}

func (f *fakeFinder) lastRadius() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.radius[len(f.radius)-1]
}

type fakeAvatars struct {
	uploaded []string
	deleted  []string
}

func (f *fakeAvatars) Upload(_ context.Context, file io.Reader, userID int64) (string, error) {
	if _, err := io.Copy(io.Discard, file); err != nil {
		return "", err
	}
	url := fmt.Sprintf("https://res.cloudinary.com/demo/image/upload/v1/profile_pictures/%d_%d.png", userID, len(f.uploaded)+1)
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeAvatars) Delete(_ context.Context, photoURL string) error {
	f.deleted = append(f.deleted, photoURL)
	return nil
}
