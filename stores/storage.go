package stores

import (
	"os"

	"shopmart/core"
	"shopmart/stores/aws"
	"shopmart/stores/filesystem"
	"shopmart/stores/memory"
	"shopmart/stores/sqlite"

	"github.com/sirupsen/logrus"
)

// GetStore selects the cart persistence backend from the STORAGE_TYPE
// environment variable. The default is in-memory, which keeps the demo
// self-contained but loses carts on restart.
func GetStore() core.CartStore {
	storageType := os.Getenv("STORAGE_TYPE")
	var store core.CartStore

	storageField := logrus.Fields{
		"storageType": storageType,
	}

	switch storageType {
	case "filesystem":
		filePath := os.Getenv("LOCAL_STORAGE_PATH")
		if filePath == "" {
			filePath = "./data/carts.json" // Default path
		}
		storageField["filePath"] = filePath
		store = filesystem.NewStore(filePath)
	case "sqlite":
		dataSourceName := os.Getenv("DATA_SOURCE_NAME")
		if dataSourceName == "" {
			dataSourceName = "shopmart.db" // Default filename
		}
		storageField["dataSourceName"] = dataSourceName
		store = sqlite.NewStore(dataSourceName)
	case "s3":
		bucketName := os.Getenv("S3_BUCKET_NAME")
		if bucketName == "" {
			logrus.Fatal("S3_BUCKET_NAME environment variable must be set for s3 storage type")
		}
		storageField["bucketName"] = bucketName
		store = aws.NewStore(bucketName)
	default:
		store = memory.NewStore()
		storageField["storageType"] = "in-memory"
	}
	logrus.WithFields(storageField).Info("Use storage")
	return store
}
