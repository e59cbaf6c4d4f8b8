package services

import (
	"context"
	"mime/multipart"

	"github.com/ecosnap/ecosnap/models"
	"github.com/google/uuid"
)

// Hand-rolled fakes with function fields. A nil field means the test does
// not expect that call.

type fakeUserRepo struct {
	createUserFn         func(user *models.User) (*models.User, error)
	findUserByEmailFn    func(email string) (*models.User, error)
	findUserByIDFn       func(id uint) (*models.User, error)
	isEmailExistFn       func(email string) error
	adjustUserPointsFn   func(userID uint, delta int) error
	addToBlacklistFn     func(blacklist *models.Blacklist) error
	isTokenBlacklistedFn func(token string) bool
	createGovFn          func(gov *models.GovernmentBody) (*models.GovernmentBody, error)
	findGovByGovIDFn     func(govID string) (*models.GovernmentBody, error)
	listGovFn            func() ([]models.GovernmentBody, error)
	deleteGovFn          func(id uint) error
}

func (f *fakeUserRepo) CreateUser(user *models.User) (*models.User, error) {
	if f.createUserFn == nil {
		panic("unexpected call to CreateUser")
	}
	return f.createUserFn(user)
}

func (f *fakeUserRepo) FindUserByEmail(email string) (*models.User, error) {
	if f.findUserByEmailFn == nil {
		panic("unexpected call to FindUserByEmail")
	}
	return f.findUserByEmailFn(email)
}

func (f *fakeUserRepo) FindUserByID(id uint) (*models.User, error) {
	if f.findUserByIDFn == nil {
		panic("unexpected call to FindUserByID")
	}
	return f.findUserByIDFn(id)
}

func (f *fakeUserRepo) IsEmailExist(email string) error {
	if f.isEmailExistFn == nil {
		panic("unexpected call to IsEmailExist")
	}
	return f.isEmailExistFn(email)
}

func (f *fakeUserRepo) AdjustUserPoints(userID uint, delta int) error {
	if f.adjustUserPointsFn == nil {
		panic("unexpected call to AdjustUserPoints")
	}
	return f.adjustUserPointsFn(userID, delta)
}

func (f *fakeUserRepo) AddToBlacklist(blacklist *models.Blacklist) error {
	if f.addToBlacklistFn == nil {
		panic("unexpected call to AddToBlacklist")
	}
	return f.addToBlacklistFn(blacklist)
}

func (f *fakeUserRepo) IsTokenInBlacklist(token string) bool {
	if f.isTokenBlacklistedFn == nil {
		return false
	}
	return f.isTokenBlacklistedFn(token)
}

func (f *fakeUserRepo) CreateGovernmentBody(gov *models.GovernmentBody) (*models.GovernmentBody, error) {
	if f.createGovFn == nil {
		panic("unexpected call to CreateGovernmentBody")
	}
	return f.createGovFn(gov)
}

func (f *fakeUserRepo) FindGovernmentBodyByGovID(govID string) (*models.GovernmentBody, error) {
	if f.findGovByGovIDFn == nil {
		panic("unexpected call to FindGovernmentBodyByGovID")
	}
	return f.findGovByGovIDFn(govID)
}

func (f *fakeUserRepo) ListGovernmentBodies() ([]models.GovernmentBody, error) {
	if f.listGovFn == nil {
		panic("unexpected call to ListGovernmentBodies")
	}
	return f.listGovFn()
}

func (f *fakeUserRepo) DeleteGovernmentBody(id uint) error {
	if f.deleteGovFn == nil {
		panic("unexpected call to DeleteGovernmentBody")
	}
	return f.deleteGovFn(id)
}

type fakeHotspotRepo struct {
	saveFn          func(hotspot *models.Hotspot) (*models.Hotspot, error)
	getByIDFn       func(id uuid.UUID) (*models.Hotspot, error)
	getHotspotsFn   func(filter models.HotspotFilter) ([]models.Hotspot, error)
	existsByHashFn  func(hash string) (bool, error)
	rejectFn        func(id uuid.UUID, reason string) error
	verifyFn        func(id uuid.UUID, ownerID uint, result models.DetectionResult, bonus int) error
	markCleanedFn   func(id uuid.UUID) error
	countFn         func(userID uint) (int64, error)
	countByStatusFn func(userID uint, status string) (int64, error)
}

func (f *fakeHotspotRepo) SaveHotspot(hotspot *models.Hotspot) (*models.Hotspot, error) {
	if f.saveFn == nil {
		panic("unexpected call to SaveHotspot")
	}
	return f.saveFn(hotspot)
}

func (f *fakeHotspotRepo) GetHotspotByID(id uuid.UUID) (*models.Hotspot, error) {
	if f.getByIDFn == nil {
		panic("unexpected call to GetHotspotByID")
	}
	return f.getByIDFn(id)
}

func (f *fakeHotspotRepo) ExistsByImageHash(hash string) (bool, error) {
	if f.existsByHashFn == nil {
		return false, nil
	}
	return f.existsByHashFn(hash)
}

func (f *fakeHotspotRepo) GetHotspots(filter models.HotspotFilter) ([]models.Hotspot, error) {
	if f.getHotspotsFn == nil {
		panic("unexpected call to GetHotspots")
	}
	return f.getHotspotsFn(filter)
}

func (f *fakeHotspotRepo) RejectHotspot(id uuid.UUID, reason string) error {
	if f.rejectFn == nil {
		panic("unexpected call to RejectHotspot")
	}
	return f.rejectFn(id, reason)
}

func (f *fakeHotspotRepo) VerifyHotspot(id uuid.UUID, ownerID uint, result models.DetectionResult, bonus int) error {
	if f.verifyFn == nil {
		panic("unexpected call to VerifyHotspot")
	}
	return f.verifyFn(id, ownerID, result, bonus)
}

func (f *fakeHotspotRepo) MarkHotspotCleaned(id uuid.UUID) error {
	if f.markCleanedFn == nil {
		panic("unexpected call to MarkHotspotCleaned")
	}
	return f.markCleanedFn(id)
}

func (f *fakeHotspotRepo) CountHotspotsByUser(userID uint) (int64, error) {
	if f.countFn == nil {
		panic("unexpected call to CountHotspotsByUser")
	}
	return f.countFn(userID)
}

func (f *fakeHotspotRepo) CountHotspotsByUserAndStatus(userID uint, status string) (int64, error) {
	if f.countByStatusFn == nil {
		panic("unexpected call to CountHotspotsByUserAndStatus")
	}
	return f.countByStatusFn(userID, status)
}

type fakeGarbageRepo struct {
	saveFn  func(request *models.GarbageRequest, bonus int) (*models.GarbageRequest, error)
	getFn   func(filter models.GarbageRequestFilter) ([]models.GarbageRequest, error)
	countFn func(userID uint) (int64, error)
}

func (f *fakeGarbageRepo) SaveGarbageRequest(request *models.GarbageRequest, bonus int) (*models.GarbageRequest, error) {
	if f.saveFn == nil {
		panic("unexpected call to SaveGarbageRequest")
	}
	return f.saveFn(request, bonus)
}

func (f *fakeGarbageRepo) GetGarbageRequests(filter models.GarbageRequestFilter) ([]models.GarbageRequest, error) {
	if f.getFn == nil {
		panic("unexpected call to GetGarbageRequests")
	}
	return f.getFn(filter)
}

func (f *fakeGarbageRepo) CountGarbageRequestsByUser(userID uint) (int64, error) {
	if f.countFn == nil {
		panic("unexpected call to CountGarbageRequestsByUser")
	}
	return f.countFn(userID)
}

type fakeRewardRepo struct {
	createFn         func(reward *models.Reward) error
	getActiveFn      func() ([]models.Reward, error)
	getByIDFn        func(id uint) (*models.Reward, error)
	redeemFn         func(userID uint, rewardID uint) (*models.Redemption, error)
	getRedemptionsFn func(userID uint) ([]models.Redemption, error)
}

func (f *fakeRewardRepo) CreateReward(reward *models.Reward) error {
	if f.createFn == nil {
		panic("unexpected call to CreateReward")
	}
	return f.createFn(reward)
}

func (f *fakeRewardRepo) GetActiveRewards() ([]models.Reward, error) {
	if f.getActiveFn == nil {
		panic("unexpected call to GetActiveRewards")
	}
	return f.getActiveFn()
}

func (f *fakeRewardRepo) GetRewardByID(id uint) (*models.Reward, error) {
	if f.getByIDFn == nil {
		panic("unexpected call to GetRewardByID")
	}
	return f.getByIDFn(id)
}

func (f *fakeRewardRepo) RedeemReward(userID uint, rewardID uint) (*models.Redemption, error) {
	if f.redeemFn == nil {
		panic("unexpected call to RedeemReward")
	}
	return f.redeemFn(userID, rewardID)
}

func (f *fakeRewardRepo) GetRedemptionsByUserID(userID uint) ([]models.Redemption, error) {
	if f.getRedemptionsFn == nil {
		panic("unexpected call to GetRedemptionsByUserID")
	}
	return f.getRedemptionsFn(userID)
}

type fakeGateway struct {
	detectFn func(ctx context.Context, image []byte, lat, lon float64) (*models.DetectionResponse, error)
}

func (f *fakeGateway) Detect(ctx context.Context, image []byte, lat, lon float64) (*models.DetectionResponse, error) {
	if f.detectFn == nil {
		panic("unexpected call to Detect")
	}
	return f.detectFn(ctx, image, lat, lon)
}

type fakeMediaService struct {
	uploadFn func(fileHeader *multipart.FileHeader, userID uint) (*models.MediaUpload, error)
	fetchFn  func(ctx context.Context, imageURL string) ([]byte, error)
}

func (f *fakeMediaService) UploadImage(fileHeader *multipart.FileHeader, userID uint) (*models.MediaUpload, error) {
	if f.uploadFn == nil {
		panic("unexpected call to UploadImage")
	}
	return f.uploadFn(fileHeader, userID)
}

func (f *fakeMediaService) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	if f.fetchFn == nil {
		panic("unexpected call to FetchImage")
	}
	return f.fetchFn(ctx, imageURL)
}

type fakeMailer struct {
	sent   []string
	sendFn func(ctx context.Context, to, rewardName string, pointsSpent int) error
}

func (f *fakeMailer) SendRedemptionMail(ctx context.Context, to, rewardName string, pointsSpent int) error {
	f.sent = append(f.sent, to)
	if f.sendFn == nil {
		return nil
	}
	return f.sendFn(ctx, to, rewardName, pointsSpent)
}
