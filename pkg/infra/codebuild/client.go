package codebuild

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/codebuild"
	"github.com/aws/aws-sdk-go-v2/service/codebuild/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prbuild/pkg/domain/interfaces"
	"github.com/m-mizutani/prbuild/pkg/domain/model"
)

// API is the subset of the CodeBuild client used to run builds
type API interface {
	StartBuild(ctx context.Context, params *codebuild.StartBuildInput, optFns ...func(*codebuild.Options)) (*codebuild.StartBuildOutput, error)
	BatchGetBuilds(ctx context.Context, params *codebuild.BatchGetBuildsInput, optFns ...func(*codebuild.Options)) (*codebuild.BatchGetBuildsOutput, error)
}

type client struct {
	api API
}

// NewClient creates a BuildEngine backed by AWS CodeBuild
func NewClient(cfg aws.Config) interfaces.BuildEngine {
	return NewClientWithAPI(codebuild.NewFromConfig(cfg))
}

// NewClientWithAPI creates a BuildEngine with a custom CodeBuild API implementation
func NewClientWithAPI(api API) interfaces.BuildEngine {
	return &client{api: api}
}

// StartBuild starts a build of req.ProjectName at req.SourceVersion
func (c *client) StartBuild(ctx context.Context, req *model.BuildRequest) (*model.BuildRecord, error) {
	out, err := c.api.StartBuild(ctx, &codebuild.StartBuildInput{
		ProjectName:   aws.String(req.ProjectName),
		SourceVersion: aws.String(req.SourceVersion),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to start CodeBuild build",
			goerr.V("project", req.ProjectName),
			goerr.V("source_version", req.SourceVersion),
		)
	}
	if out.Build == nil {
		return nil, goerr.New("CodeBuild returned no build",
			goerr.V("project", req.ProjectName),
		)
	}

	return toRecord(out.Build), nil
}

// QueryBuilds looks up builds by ID. Unknown IDs are omitted from the result.
func (c *client) QueryBuilds(ctx context.Context, ids []string) ([]*model.BuildRecord, error) {
	out, err := c.api.BatchGetBuilds(ctx, &codebuild.BatchGetBuildsInput{
		Ids: ids,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get CodeBuild builds", goerr.V("ids", ids))
	}

	records := make([]*model.BuildRecord, 0, len(out.Builds))
	for i := range out.Builds {
		records = append(records, toRecord(&out.Builds[i]))
	}
	return records, nil
}

func toRecord(b *types.Build) *model.BuildRecord {
	return &model.BuildRecord{
		ID:            aws.ToString(b.Id),
		BuildStatus:   model.BuildStatus(b.BuildStatus),
		SourceVersion: aws.ToString(b.SourceVersion),
	}
}
