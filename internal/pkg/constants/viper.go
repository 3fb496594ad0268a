package constants

// ключи конфигурации viper
const (
	ViperServerAddrKey         = "server.addr"
	ViperServerAllowOriginsKey = "server.allow_origins"

	ViperLogLevelKey  = "log.level"
	ViperLogFormatKey = "log.format"

	ViperDataSourceKey              = "data.source"
	ViperDataDirKey                 = "data.dir"
	ViperDataNationalFileKey        = "data.national_file"
	ViperDataIndustryFileKey        = "data.industry_file"
	ViperDataPrefectureFileKey      = "data.prefecture_file"
	ViperDataCoordinatesFileKey     = "data.coordinates_file"
	ViperDataWageEncodingKey        = "data.wage_encoding"
	ViperDataCoordinatesEncodingKey = "data.coordinates_encoding"

	ViperPostgresDSNKey            = "postgres.dsn"
	ViperPostgresConnectRetriesKey = "postgres.connect_retries"
)

const (
	DataSourceCSV      = "csv"
	DataSourcePostgres = "postgres"
)

const (
	CtxKeyRequestID = "request_id"
)
