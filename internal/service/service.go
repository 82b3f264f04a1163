package service

import (
	"github.com/google/wire"

	"assetline/internal/database/mongodb/repository"
)

var ProviderSet = wire.NewSet(
	NewAuthService,
	NewRoleService,
	NewAssetService,
	NewRequestService,
	NewReportService,
	NewPaymentService,
	NewHealthService,
	wire.Bind(new(RoleStore), new(*repository.RoleRepository)),
	wire.Bind(new(AssetStore), new(*repository.AssetRepository)),
	wire.Bind(new(RequestStore), new(*repository.RequestRepository)),
)
