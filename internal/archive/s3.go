package archive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"PremierSync/internal/config"
	"PremierSync/internal/interfaces"
	"PremierSync/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// parquetContentType 归档对象的Content-Type
const parquetContentType = "application/vnd.apache.parquet"

// uploader 上传侧最小接口，便于测试替换
type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// objectLister 列举侧最小接口
type objectLister interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Archiver 将每次采集的完整行集编码为parquet写入S3，
// key格式：<prefix>/<data_type>/<YYYYMMDD_HHMMSS>.parquet。对象只写不改
type S3Archiver struct {
	uploader uploader
	lister   objectLister
	bucket   string
	prefix   string
	logger   *logrus.Logger
}

var _ interfaces.Archiver = (*S3Archiver)(nil)

// NewS3Archiver 创建S3Archiver。凭证优先使用配置中的静态密钥，
// 缺省时走SDK默认凭证链
func NewS3Archiver(ctx context.Context, cfg *config.S3Config, logger *logrus.Logger) (*S3Archiver, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Archiver{
		uploader: manager.NewUploader(client),
		lister:   client,
		bucket:   cfg.Bucket,
		prefix:   cfg.KeyPrefix,
		logger:   logger,
	}, nil
}

// ArchiveLeagueTable 归档一次积分榜快照
func (a *S3Archiver) ArchiveLeagueTable(ctx context.Context, rows []model.LeagueRow) (string, error) {
	buf, err := encodeParquet(rows)
	if err != nil {
		return "", err
	}
	return a.upload(ctx, model.DataTypeLeagueTable, buf)
}

// ArchiveTopScorers 归档一次射手榜快照
func (a *S3Archiver) ArchiveTopScorers(ctx context.Context, rows []model.ScorerRow) (string, error) {
	buf, err := encodeParquet(rows)
	if err != nil {
		return "", err
	}
	return a.upload(ctx, model.DataTypeTopScorers, buf)
}

func (a *S3Archiver) upload(ctx context.Context, dataType model.DataType, body *bytes.Buffer) (string, error) {
	key := a.objectKey(dataType, time.Now())
	if _, err := a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body.Bytes()),
		ContentType: aws.String(parquetContentType),
	}); err != nil {
		return "", fmt.Errorf("上传快照失败: %w, key: %s", err, key)
	}

	a.logger.Infof("快照已归档: s3://%s/%s", a.bucket, key)
	return key, nil
}

// objectKey 秒级时间戳命名，保证同一数据类型下key按时间有序
func (a *S3Archiver) objectKey(dataType model.DataType, t time.Time) string {
	return fmt.Sprintf("%s/%s/%s.parquet", a.prefix, dataType, t.Format("20060102_150405"))
}

// ListEntries 列举某数据类型下全部归档key
func (a *S3Archiver) ListEntries(ctx context.Context, dataType model.DataType) ([]string, error) {
	out, err := a.lister.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(fmt.Sprintf("%s/%s/", a.prefix, dataType)),
	})
	if err != nil {
		return nil, fmt.Errorf("列举快照失败: %w, data_type: %s", err, dataType)
	}

	keys := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		keys = append(keys, aws.ToString(obj.Key))
	}
	return keys, nil
}
